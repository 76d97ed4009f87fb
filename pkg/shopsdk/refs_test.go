package shopsdk_test

import (
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/shopfront/pkg/shopsdk"
	"github.com/stretchr/testify/require"
)

func TestOrderDecodesBothReferenceShapes(t *testing.T) {
	t.Parallel()

	bare := `{"_id":"o1","user":"u1","product":"p1","quantity":2,"price":5,"totalPrice":10,"status":"pending"}`
	expanded := `{"_id":"o1","user":{"_id":"u1","name":"Alice","email":"a@x.io"},
		"product":{"_id":"p1","name":"Mug","price":5,"stock":3},"quantity":2,"price":5,"totalPrice":10,"status":"pending",
		"lastUpdatedBy":{"user":{"_id":"admin1","name":"Root"},"timestamp":"2024-01-02T03:04:05Z","action":"status:shipped"}}`

	var a, b shopsdk.Order
	require.NoError(t, json.Unmarshal([]byte(bare), &a))
	require.NoError(t, json.Unmarshal([]byte(expanded), &b))

	require.Equal(t, shopsdk.RefID, a.User.Kind)
	require.Equal(t, shopsdk.RefExpanded, b.User.Kind)
	require.Equal(t, "Alice", b.User.Name)

	// Ownership does not depend on the shape.
	require.True(t, a.User.SameUser("u1"))
	require.True(t, b.User.SameUser("u1"))
	require.False(t, b.User.SameUser(""))

	require.Equal(t, "p1", a.Product.Label())
	require.Equal(t, "Mug", b.Product.Label())

	require.Nil(t, a.LastUpdatedBy)
	require.NotNil(t, b.LastUpdatedBy)
	require.Equal(t, "admin1", b.LastUpdatedBy.User.ID)
}

func TestReferenceRejectsWrongType(t *testing.T) {
	t.Parallel()

	var o shopsdk.Order
	require.Error(t, json.Unmarshal([]byte(`{"user":42}`), &o))
	require.Error(t, json.Unmarshal([]byte(`{"product":[1]}`), &o))
}

func TestNullReferenceIsEmpty(t *testing.T) {
	t.Parallel()

	var o shopsdk.Order
	require.NoError(t, json.Unmarshal([]byte(`{"user":null}`), &o))
	require.False(t, o.User.SameUser(""))
}

func TestReferenceMarshalKeepsShape(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(shopsdk.UserID("u1"))
	require.NoError(t, err)
	require.JSONEq(t, `"u1"`, string(b))

	b, err = json.Marshal(shopsdk.ProductRef{Kind: shopsdk.RefExpanded, ID: "p1", Name: "Mug", Price: 4.5})
	require.NoError(t, err)
	require.JSONEq(t, `{"_id":"p1","name":"Mug","price":4.5}`, string(b))
}

func TestCartCountAndConsistency(t *testing.T) {
	t.Parallel()

	var nilCart *shopsdk.Cart
	require.Zero(t, nilCart.Count())
	require.True(t, nilCart.Empty())
	require.True(t, nilCart.Consistent())

	cart := &shopsdk.Cart{
		Items: []shopsdk.CartItem{
			{Product: shopsdk.ProductRef{Name: "Mug"}, Quantity: 2, Price: 1.10, Total: 2.20},
			{Product: shopsdk.ProductRef{Name: "Tee"}, Quantity: 3, Price: 10, Total: 30},
			{Product: shopsdk.ProductID("p-cap"), Quantity: 1, Price: 5, Total: 5},
		},
		CartTotal: 37.20,
	}
	require.Equal(t, 6, cart.Count())
	require.True(t, cart.Consistent())

	item, ok := cart.Find("Tee")
	require.True(t, ok)
	require.Equal(t, 3, item.Quantity)
	_, ok = cart.Find("Hat")
	require.False(t, ok)
	_, ok = cart.Find("")
	require.False(t, ok)

	item, ok = cart.Find("p-cap")
	require.True(t, ok, "bare id lines match on id")
	require.Equal(t, 1, item.Quantity)

	cart.CartTotal = 40
	require.False(t, cart.Consistent())

	cart.CartTotal = 37.20
	cart.Items[0].Total = 3
	require.False(t, cart.Consistent())
}
