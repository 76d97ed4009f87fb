package backend

import (
	"fmt"

	"github.com/aussiebroadwan/shopfront/pkg/cryptox"
	"github.com/aussiebroadwan/shopfront/pkg/jwtx"
	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
)

// DefaultCatalog is loaded when Config.SeedCatalog is set.
var DefaultCatalog = []shopsdk.Product{
	{Name: "Classic Tee", Desc: "Heavyweight cotton t-shirt.", Price: 25, Stock: 100, Category: "apparel", ImgURL: "/img/classic-tee.jpg"},
	{Name: "Canvas Tote", Desc: "Everyday tote bag.", Price: 18.5, Stock: 60, Category: "accessories", ImgURL: "/img/canvas-tote.jpg"},
	{Name: "Enamel Mug", Desc: "Camp mug, 350ml.", Price: 12, Stock: 40, Category: "home", ImgURL: "/img/enamel-mug.jpg"},
	{Name: "Wool Beanie", Desc: "Merino rib-knit beanie.", Price: 30, Stock: 25, Category: "apparel", ImgURL: "/img/wool-beanie.jpg"},
	{Name: "Sticker Pack", Desc: "Five vinyl stickers.", Price: 6, Stock: 500, Category: "accessories", ImgURL: "/img/sticker-pack.jpg"},
}

// Seed creates the admin account and the catalog. It is meant for a fresh
// store.
func Seed(st *Store, hasher *cryptox.Hasher, cfg Config) error {
	if cfg.AdminEmail != "" {
		hash, err := hasher.Hash(cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if _, err := st.CreateUser(cfg.AdminName, cfg.AdminEmail, hash, jwtx.RoleAdmin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	if cfg.SeedCatalog {
		for _, p := range DefaultCatalog {
			if _, err := st.AddProduct(p); err != nil {
				return fmt.Errorf("seed product %q: %w", p.Name, err)
			}
		}
	}
	return nil
}
