package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// DonationPolicy bounds what the donation form accepts. It is loaded from a
// mounted policy file and hot-reloaded so operators can tighten limits
// without a restart.
type DonationPolicy struct {
	AllowedCurrencies    []string `mapstructure:"allowedCurrencies"`
	MinAmountMinor       int64    `mapstructure:"minAmountMinor"`
	MaxAmountMinor       int64    `mapstructure:"maxAmountMinor"`
	MaxInKindQuantity    int      `mapstructure:"maxInKindQuantity"`
	RecurringFrequencies []string `mapstructure:"recurringFrequencies"`
}

func DefaultDonationPolicy() DonationPolicy {
	return DonationPolicy{
		AllowedCurrencies:    []string{"USD", "EUR", "IDR"},
		MinAmountMinor:       100,
		MaxAmountMinor:       100_000_000,
		MaxInKindQuantity:    10_000,
		RecurringFrequencies: []string{"WEEKLY", "MONTHLY", "QUARTERLY", "YEARLY"},
	}
}

// AllowsCurrency reports whether the currency code is accepted.
func (p DonationPolicy) AllowsCurrency(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range p.AllowedCurrencies {
		if strings.ToUpper(c) == code {
			return true
		}
	}
	return false
}

// AllowsFrequency reports whether the recurring frequency is accepted.
func (p DonationPolicy) AllowsFrequency(freq string) bool {
	freq = strings.ToUpper(strings.TrimSpace(freq))
	for _, f := range p.RecurringFrequencies {
		if strings.ToUpper(f) == freq {
			return true
		}
	}
	return false
}

type DonationPolicyHolder struct {
	current atomic.Value // holds DonationPolicy
}

func NewDonationPolicyHolder() (*DonationPolicyHolder, error) {
	v := viper.New()

	v.SetConfigName("policy")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/heartlink/config")
	v.AddConfigPath("/etc/heartlink")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HEARTLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultDonationPolicy()
		v.SetDefault("donation.allowedCurrencies", defaults.AllowedCurrencies)
		v.SetDefault("donation.minAmountMinor", defaults.MinAmountMinor)
		v.SetDefault("donation.maxAmountMinor", defaults.MaxAmountMinor)
		v.SetDefault("donation.maxInKindQuantity", defaults.MaxInKindQuantity)
		v.SetDefault("donation.recurringFrequencies", defaults.RecurringFrequencies)
	}

	var policy DonationPolicy
	if err := v.UnmarshalKey("donation", &policy); err != nil {
		return nil, err
	}
	if err := validateDonationPolicy(policy); err != nil {
		return nil, err
	}

	holder := &DonationPolicyHolder{}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated DonationPolicy
		if err := v.UnmarshalKey("donation", &updated); err != nil {
			log.Printf("[donation-policy] reload failed: %v", err)
			return
		}
		if err := validateDonationPolicy(updated); err != nil {
			log.Printf("[donation-policy] invalid policy ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[donation-policy] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *DonationPolicyHolder) Get() DonationPolicy {
	return h.current.Load().(DonationPolicy)
}

func validateDonationPolicy(p DonationPolicy) error {
	if len(p.AllowedCurrencies) == 0 {
		return errors.New("donation.allowedCurrencies cannot be empty")
	}
	if len(p.RecurringFrequencies) == 0 {
		return errors.New("donation.recurringFrequencies cannot be empty")
	}
	if p.MinAmountMinor < 0 {
		return errors.New("donation.minAmountMinor cannot be negative")
	}
	if p.MaxAmountMinor > 0 && p.MaxAmountMinor < p.MinAmountMinor {
		return errors.New("donation.maxAmountMinor cannot be below minAmountMinor")
	}
	if p.MaxInKindQuantity <= 0 {
		return errors.New("donation.maxInKindQuantity must be positive")
	}
	return nil
}
