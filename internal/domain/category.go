package domain

// Category is the topical bucket a repository is rendered under.
type Category string

const (
	CategoryInfrastructure Category = "Infrastructure"
	CategorySDKs           Category = "SDKs & Tooling"
	CategoryWallets        Category = "Wallets & Mobile"
	CategoryPrograms       Category = "Programs (SPL)"
	CategoryNFTPrograms    Category = "NFTs & Programs"
	CategoryNFTMinting     Category = "NFTs & Minting"
	CategoryPayments       Category = "Payments"
	CategoryDeFi           Category = "DeFi"
	CategoryOracles        Category = "Oracles"

	// CategoryDefault is used whenever nothing more specific applies.
	CategoryDefault = CategorySDKs

	// legacyNFTPrograms is the combined label used by older configuration files.
	legacyNFTPrograms = "Programs (SPL/Metaplex) & NFTs"
)

var displayOrder = []Category{
	CategoryInfrastructure,
	CategorySDKs,
	CategoryWallets,
	CategoryPrograms,
	CategoryNFTPrograms,
	CategoryNFTMinting,
	CategoryPayments,
	CategoryDeFi,
	CategoryOracles,
}

// Categories returns the closed set of categories in display order.
func Categories() []Category {
	out := make([]Category, len(displayOrder))
	copy(out, displayOrder)
	return out
}

// ParseCategory maps a label to a known category, normalizing the legacy
// combined label. ok is false when the label is outside the closed set.
func ParseCategory(label string) (c Category, ok bool) {
	if label == legacyNFTPrograms {
		return CategoryNFTPrograms, true
	}
	for _, known := range displayOrder {
		if string(known) == label {
			return known, true
		}
	}
	return "", false
}

// Normalize returns the category itself, or its modern name if it is a legacy
// label, or CategoryDefault if it is unknown.
func (c Category) Normalize() Category {
	if parsed, ok := ParseCategory(string(c)); ok {
		return parsed
	}
	return CategoryDefault
}
