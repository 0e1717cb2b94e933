// internal/stores/stores_test.go
package stores

import (
	"github.com/nexsy/nexsy-backend/internal/models"
)

// Shared fixtures for the store suites.

func validProduct() *models.Product {
	return &models.Product{
		ProductName:   "Solar Camping Lantern",
		WhatIsIt:      "A collapsible solar-powered lantern for outdoor use",
		Price:         39.99,
		Currency:      "USD",
		TargetCountry: "United States",
		MainGoal:      "sales",
	}
}

func validVisual(productID string) *models.VisualAsset {
	return &models.VisualAsset{
		ProductID:  productID,
		Title:      "Hero shot",
		AssetURL:   "s3://nexsy-assets/users/u1/uploads/images/hero.png",
		MediaType:  models.MediaTypeImage,
		SourceType: models.SourceTypeUploaded,
	}
}

func validAdCopy(name string) models.AdCopy {
	return models.AdCopy{
		VariationName:     name,
		Headline:          "Light up your campsite",
		BodyText:          "Charges all day, glows all night.",
		CallToAction:      "Shop now",
		PlatformOptimized: "universal",
	}
}

func validOutput(productID string) *models.CreativeOutput {
	return &models.CreativeOutput{
		ProductID:                  productID,
		CreativeConceptTitle:       "Off-grid freedom",
		CreativeConceptDescription: "Position the lantern as the reliable heart of any campsite.",
		TargetAudienceSummary:      "Weekend campers and overlanders",
		WhyThisWorks:               "Speaks to self-reliance without preaching.",
		AdCopies:                   []models.AdCopy{validAdCopy("Variation A")},
	}
}

func validStrategy(productID string) *models.MarketingStrategy {
	return &models.MarketingStrategy{
		ProductID: productID,
		ProductInfopack: &models.ProductInfoPack{
			CustomerAvatars: []models.CustomerAvatar{
				{Label: "The Weekend Camper", Description: "Escapes the city twice a month."},
			},
		},
		CreativeBrief: &models.CreativeBrief{
			CreativeAngle:           "Freedom from outlets",
			VisualStyleArtDirection: "Warm dusk tones, natural light",
		},
	}
}
