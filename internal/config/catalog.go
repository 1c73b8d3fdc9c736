package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CatalogLimits bounds the attachments a merchant can put on a catalog.
// The tier count bound (1..3) is a product rule, not a limit, and lives in
// the catalog domain package.
type CatalogLimits struct {
	// MaxImageBytes is the raw upload cap in bytes.
	MaxImageBytes int64 `mapstructure:"maxImageBytes"`
	// MaxEncodedImageChars caps the base64 data-URI payload stored inline
	// on a catalog or tier.
	MaxEncodedImageChars int `mapstructure:"maxEncodedImageChars"`
}

func DefaultCatalogLimits() CatalogLimits {
	return CatalogLimits{
		MaxImageBytes:        2 * 1024 * 1024,
		MaxEncodedImageChars: 1_000_000,
	}
}

type CatalogLimitsHolder struct {
	current atomic.Value // holds CatalogLimits
}

func NewCatalogLimitsHolder() (*CatalogLimitsHolder, error) {
	v := viper.New()

	v.SetConfigName("catalog")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/voca/config") // Volume-mounted config
	v.AddConfigPath("/etc/voca")            // System config
	v.AddConfigPath(".")                    // Current directory (dev mode)

	v.SetEnvPrefix("VOCA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultCatalogLimits()
		v.SetDefault("catalog.maxImageBytes", defaults.MaxImageBytes)
		v.SetDefault("catalog.maxEncodedImageChars", defaults.MaxEncodedImageChars)
	}

	var limits CatalogLimits
	if err := v.UnmarshalKey("catalog", &limits); err != nil {
		return nil, err
	}
	if err := validateCatalogLimits(limits); err != nil {
		return nil, err
	}

	holder := &CatalogLimitsHolder{}
	holder.current.Store(limits)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CatalogLimits
		if err := v.UnmarshalKey("catalog", &updated); err != nil {
			log.Printf("[catalog-config] reload failed: %v", err)
			return
		}
		if err := validateCatalogLimits(updated); err != nil {
			log.Printf("[catalog-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[catalog-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *CatalogLimitsHolder) Get() CatalogLimits {
	return h.current.Load().(CatalogLimits)
}

// NewStaticCatalogLimitsHolder wraps fixed limits, for tests.
func NewStaticCatalogLimitsHolder(limits CatalogLimits) *CatalogLimitsHolder {
	holder := &CatalogLimitsHolder{}
	holder.current.Store(limits)
	return holder
}

func validateCatalogLimits(limits CatalogLimits) error {
	if limits.MaxImageBytes <= 0 {
		return errors.New("catalog.maxImageBytes must be positive")
	}
	if limits.MaxEncodedImageChars <= 0 {
		return errors.New("catalog.maxEncodedImageChars must be positive")
	}
	return nil
}
