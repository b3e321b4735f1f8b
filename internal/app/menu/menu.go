package menu

import (
	"strings"

	"Admin-Console/internal/app/session"
)

// Заголовки и названия пунктов - ключи каталога сообщений

type Meta struct {
	Roles []string `json:"roles,omitempty"`
}

// Item - ссылка (Link) или группа (Children)
type Item struct {
	Title    string `json:"title"`
	Icon     string `json:"icon,omitempty"`
	Link     string `json:"link,omitempty"`
	New      bool   `json:"new,omitempty"`
	Meta     *Meta  `json:"meta,omitempty"`
	Children []Item `json:"children,omitempty"`
}

type Section struct {
	Heading string `json:"heading"`
	Items   []Item `json:"items"`
}

type Menu struct {
	Sections []Section `json:"sections"`
	Bottom   []Item    `json:"bottom"`
}

func link(title, icon, href string) Item {
	return Item{Title: title, Icon: icon, Link: href}
}

func adminOnly(it Item) Item {
	it.Meta = &Meta{Roles: []string{"admin"}}
	return it
}

// Default - меню консоли
func Default() Menu {
	orders := adminOnly(Item{
		Title: "nav.orders_sales",
		Icon:  "i-lucide-credit-card",
		Children: []Item{
			link("nav.all_orders", "i-lucide-circle", "/orders"),
			link("nav.pending_orders", "i-lucide-circle", "/orders/pending"),
		},
	})

	return Menu{
		Sections: []Section{
			{
				Heading: "nav.core_administration",
				Items: []Item{
					adminOnly(Item{
						Title: "nav.authentication",
						Icon:  "i-lucide-lock-keyhole-open",
						Children: []Item{
							link("nav.role_permission", "i-lucide-circle", "/roles"),
							link("nav.system_users", "i-lucide-circle", "/users"),
						},
					}),
					{
						Title: "nav.platform_settings",
						Icon:  "i-lucide-settings",
						Children: []Item{
							link("nav.general_settings", "i-lucide-circle", "/general-settings"),
							link("nav.translation", "i-lucide-globe", "/translations"),
							link("nav.store_notifications", "i-lucide-circle", "/store-notifications"),
							link("settings.sidebar.security", "i-lucide-globe", "/settings/security"),
							link("nav.items.payment_methods", "i-lucide-credit-card", "/payment-methods"),
						},
					},
				},
			},
			{
				Heading: "nav.home_page",
				Items: []Item{
					{
						Title: "nav.content_management",
						Icon:  "i-lucide-table-of-contents",
						Children: []Item{
							link("nav.content_blocks", "i-lucide-circle", "/content-blocks"),
							link("nav.service_cards", "i-lucide-circle", "/service-cards"),
							link("nav.news", "i-lucide-circle", "/news"),
						},
					},
				},
			},
			{
				Heading: "nav.product_sales",
				Items: []Item{
					link("nav.store", "i-lucide-store", "/stores"),
					{
						Title: "nav.product_inventory",
						Icon:  "i-lucide-shopping-basket",
						Children: []Item{
							link("nav.store_inventories", "i-lucide-circle", "/store-products"),
							link("nav.manage_brands", "i-lucide-circle", "/brands"),
							link("nav.models", "i-lucide-circle", "/models"),
							link("nav.body_types", "i-lucide-circle", "/body-types"),
							link("nav.cars", "i-lucide-circle", "/cars"),
						},
					},
					orders,
				},
			},
		},
		Bottom: []Item{
			adminOnly(link("nav.help_support", "i-lucide-circle-help", "/support")),
			adminOnly(link("nav.feedback", "i-lucide-send", "/feedback")),
			adminOnly(link("nav.get_our_app", "i-lucide-smartphone-download", "/get-app")),
		},
	}
}

func allowed(it Item, s session.Session) bool {
	if it.Meta == nil || len(it.Meta.Roles) == 0 {
		return true
	}
	if s.IsSuperAdmin() {
		return true
	}
	user, ok := s.User()
	if !ok || !s.Authenticated() {
		return false
	}
	for _, role := range it.Meta.Roles {
		if strings.EqualFold(role, user.Role) {
			return true
		}
	}
	return false
}

func filterItems(items []Item, s session.Session) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !allowed(it, s) {
			continue
		}
		if it.Children != nil {
			it.Children = filterItems(it.Children, s)
			if len(it.Children) == 0 {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// Visible оставляет пункты, доступные роли пользователя сессии. Пустые группы и разделы убираются.
func (m Menu) Visible(s session.Session) Menu {
	out := Menu{Sections: []Section{}, Bottom: filterItems(m.Bottom, s)}
	for _, sec := range m.Sections {
		items := filterItems(sec.Items, s)
		if len(items) == 0 {
			continue
		}
		out.Sections = append(out.Sections, Section{Heading: sec.Heading, Items: items})
	}
	return out
}

func localizeItems(items []Item, translate func(string) string) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		it.Title = translate(it.Title)
		if it.Children != nil {
			it.Children = localizeItems(it.Children, translate)
		}
		out[i] = it
	}
	return out
}

// Localize подставляет переводы вместо ключей
func (m Menu) Localize(translate func(string) string) Menu {
	out := Menu{Sections: make([]Section, len(m.Sections)), Bottom: localizeItems(m.Bottom, translate)}
	for i, sec := range m.Sections {
		out.Sections[i] = Section{Heading: translate(sec.Heading), Items: localizeItems(sec.Items, translate)}
	}
	return out
}

// Links - все ссылки меню в порядке обхода
func (m Menu) Links() []string {
	var out []string
	var walk func([]Item)
	walk = func(items []Item) {
		for _, it := range items {
			if it.Link != "" {
				out = append(out, it.Link)
			}
			walk(it.Children)
		}
	}
	for _, sec := range m.Sections {
		walk(sec.Items)
	}
	walk(m.Bottom)
	return out
}
