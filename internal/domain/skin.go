package domain

// Skin is a purchasable cosmetic card theme.
type Skin struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Price int    `yaml:"price" json:"price"`
}
