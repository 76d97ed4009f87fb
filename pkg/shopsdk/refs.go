package shopsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RefKind tells whether a reference arrived as a bare id or as an embedded
// document.
type RefKind uint8

const (
	RefID RefKind = iota
	RefExpanded
)

// UserRef is an order's owner: either an id string or a populated user.
// Both shapes carry the id, so owner checks never inspect the kind.
type UserRef struct {
	Kind  RefKind
	ID    string
	Name  string
	Email string
}

type userDoc struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UserID returns a bare id reference.
func UserID(id string) UserRef { return UserRef{Kind: RefID, ID: id} }

// SameUser reports whether both references name the same non-empty user.
func (r UserRef) SameUser(id string) bool {
	return r.ID != "" && r.ID == id
}

func (r *UserRef) UnmarshalJSON(b []byte) error {
	switch {
	case bytes.Equal(b, []byte("null")):
		*r = UserRef{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = UserID(id)
		return nil
	}

	var doc userDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("user reference: %w", err)
	}
	*r = UserRef{Kind: RefExpanded, ID: doc.ID, Name: doc.Name, Email: doc.Email}
	return nil
}

func (r UserRef) MarshalJSON() ([]byte, error) {
	if r.Kind == RefID {
		return json.Marshal(r.ID)
	}
	return json.Marshal(userDoc{ID: r.ID, Name: r.Name, Email: r.Email})
}

// ProductRef is a product reference: an id string or a populated product.
type ProductRef struct {
	Kind   RefKind
	ID     string
	Name   string
	Price  float64
	ImgURL string
	Stock  int
}

type productDoc struct {
	ID     string  `json:"_id"`
	Name   string  `json:"name,omitempty"`
	Price  float64 `json:"price,omitempty"`
	ImgURL string  `json:"imgURL,omitempty"`
	Stock  int     `json:"stock,omitempty"`
}

// ProductID returns a bare id reference.
func ProductID(id string) ProductRef { return ProductRef{Kind: RefID, ID: id} }

// Label is the product name when populated, else the id.
func (r ProductRef) Label() string {
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}

func (r *ProductRef) UnmarshalJSON(b []byte) error {
	switch {
	case bytes.Equal(b, []byte("null")):
		*r = ProductRef{}
		return nil
	case len(b) > 0 && b[0] == '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = ProductID(id)
		return nil
	}

	var doc productDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("product reference: %w", err)
	}
	*r = ProductRef{
		Kind:   RefExpanded,
		ID:     doc.ID,
		Name:   doc.Name,
		Price:  doc.Price,
		ImgURL: doc.ImgURL,
		Stock:  doc.Stock,
	}
	return nil
}

func (r ProductRef) MarshalJSON() ([]byte, error) {
	if r.Kind == RefID {
		return json.Marshal(r.ID)
	}
	return json.Marshal(productDoc{ID: r.ID, Name: r.Name, Price: r.Price, ImgURL: r.ImgURL, Stock: r.Stock})
}
