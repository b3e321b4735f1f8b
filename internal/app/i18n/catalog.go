package i18n

import (
	"context"
	"fmt"
	"maps"
	"net/url"

	"Admin-Console/internal/app/utils"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Getter - часть apiclient.Client, нужная каталогу
type Getter interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

// Catalog - сообщения интерфейса по локалям. Каждая локаль загружается не больше одного раза
// за жизнь процесса, отметка ставится только после успешной загрузки.
type Catalog struct {
	client   Getter
	messages *xsync.Map[string, map[string]string]
	loads    singleflight.Group
	builder  *catalog.Builder
}

func NewCatalog(client Getter) *Catalog {
	return &Catalog{
		client:   client,
		messages: xsync.NewMap[string, map[string]string](),
		builder:  catalog.NewBuilder(catalog.Fallback(language.English)),
	}
}

// Load загружает переводы локали, если их еще нет
func (c *Catalog) Load(ctx context.Context, locale string) error {
	if c.Loaded(locale) {
		return nil
	}

	// Общая загрузка не зависит от отмены контекста первого вызывающего
	shared := context.WithoutCancel(ctx)
	ch := c.loads.DoChan(locale, func() (any, error) {
		if c.Loaded(locale) {
			return nil, nil
		}

		var raw map[string]any
		if err := c.client.GetJSON(shared, "translations/"+url.PathEscape(locale), nil, &raw); err != nil {
			logrus.Errorf("Failed to load messages for locale %s: %v", locale, err)
			return nil, fmt.Errorf("load messages %s: %w", locale, err)
		}

		flat := make(map[string]string)
		flatten("", raw, flat)
		c.register(locale, flat)
		c.messages.Store(locale, flat)

		logrus.WithFields(logrus.Fields{"locale": locale, "messages": len(flat)}).Info("Locale messages loaded")
		return nil, nil
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Catalog) register(locale string, flat map[string]string) {
	tag, err := language.Parse(locale)
	if err != nil {
		logrus.Warnf("Locale %s is not a valid language tag, formatting disabled", locale)
		return
	}
	for key, msg := range flat {
		if err := c.builder.SetString(tag, key, msg); err != nil {
			logrus.Warnf("Skipping message %s for %s: %v", key, locale, err)
		}
	}
}

func (c *Catalog) Loaded(locale string) bool {
	_, ok := c.messages.Load(locale)
	return ok
}

// Messages возвращает копию сообщений локали
func (c *Catalog) Messages(locale string) (map[string]string, bool) {
	msgs, ok := c.messages.Load(locale)
	if !ok {
		return nil, false
	}
	return maps.Clone(msgs), true
}

// Lookup ищет сообщение без форматирования
func (c *Catalog) Lookup(locale, key string) (string, bool) {
	msgs, ok := c.messages.Load(locale)
	if !ok {
		return "", false
	}
	msg, ok := msgs[key]
	return msg, ok
}

// T возвращает перевод ключа или сам ключ. С аргументами сообщение форматируется.
func (c *Catalog) T(locale, key string, args ...any) string {
	if len(args) == 0 {
		if msg, ok := c.Lookup(locale, key); ok {
			return msg
		}
		return key
	}

	if !c.Loaded(locale) {
		return key
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return key
	}
	return message.NewPrinter(tag, message.Catalog(c.builder)).Sprintf(key, args...)
}

// Watch загружает текущую локаль сразу и каждую новую при смене. Возвращает функцию отписки.
func (c *Catalog) Watch(ctx context.Context, locale *ActiveLocale) func() {
	go c.Load(ctx, locale.Code())
	return locale.Subscribe(func(code string) {
		go c.Load(ctx, code)
	})
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case nil:
		default:
			out[key] = utils.JSString(val)
		}
	}
}
