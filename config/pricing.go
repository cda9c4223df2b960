package config

import (
	"github.com/skadi15/fruitstand/internal/domain/model"
	"github.com/skadi15/fruitstand/internal/domain/pricing"
)

// PricingConfig holds catalog prices in cents and the offer switches.
type PricingConfig struct {
	AppleCents        int64 `env:"APPLE_CENTS"         envDefault:"25"`
	OrangeCents       int64 `env:"ORANGE_CENTS"        envDefault:"60"`
	AppleBOGO         bool  `env:"APPLE_BOGO"          envDefault:"true"`
	OrangeThreeForTwo bool  `env:"ORANGE_THREE_FOR_TWO" envDefault:"true"`
}

// Sanitize clamps negative prices to zero.
func (p *PricingConfig) Sanitize() {
	p.AppleCents = max(p.AppleCents, 0)
	p.OrangeCents = max(p.OrangeCents, 0)
}

// Catalog converts the configuration into a pricing catalog.
func (p PricingConfig) Catalog() pricing.Catalog {
	return pricing.Catalog{
		AppleCents:  model.Money(p.AppleCents),
		OrangeCents: model.Money(p.OrangeCents),
		Offers: pricing.Offers{
			AppleBOGO:         p.AppleBOGO,
			OrangeThreeForTwo: p.OrangeThreeForTwo,
		},
	}
}
