package session

import "slices"

const (
	RoleSuperAdmin = "Super Admin"
	RoleAdmin      = "Admin"
	RoleDeveloper  = "Developer"

	developerPermission = "for_developer"
)

func (s Session) permissions() []string {
	if s.Data == nil {
		return nil
	}
	out := make([]string, 0, len(s.Data.Permissions))
	for _, p := range s.Data.Permissions {
		if p.Slug != "" {
			out = append(out, p.Slug)
		}
	}
	return out
}

// HasRole сравнивает роль аутентифицированного пользователя
func (s Session) HasRole(role string) bool {
	if !s.Authenticated() {
		return false
	}
	user, ok := s.User()
	return ok && user.Role != "" && user.Role == role
}

// HasPermission - есть хотя бы одно из прав.
// Без списка прав for_developer выдается роли разработчика.
func (s Session) HasPermission(slugs ...string) bool {
	if !s.Authenticated() || s.Data == nil {
		return false
	}
	if s.Data.Permissions == nil {
		return slices.Contains(slugs, developerPermission) && s.IsDeveloper()
	}

	granted := s.permissions()
	for _, slug := range slugs {
		if slices.Contains(granted, slug) {
			return true
		}
	}
	return false
}

// HasAllPermissions - есть все права. Пустой список разрешен любой аутентифицированной сессии.
func (s Session) HasAllPermissions(slugs []string) bool {
	if !s.Authenticated() {
		return false
	}
	granted := s.permissions()
	for _, slug := range slugs {
		if !slices.Contains(granted, slug) {
			return false
		}
	}
	return true
}

func (s Session) IsSuperAdmin() bool { return s.HasRole(RoleSuperAdmin) }
func (s Session) IsAdmin() bool      { return s.HasRole(RoleAdmin) }
func (s Session) IsDeveloper() bool  { return s.HasRole(RoleDeveloper) }

// HasAnyRole - роль пользователя входит в список (пустой список разрешен)
func (s Session) HasAnyRole(roles []string) bool {
	if len(roles) == 0 {
		return true
	}
	if !s.Authenticated() {
		return false
	}
	user, ok := s.User()
	return ok && slices.Contains(roles, user.Role)
}
