package models

import (
	"encoding/json"
	"strings"
)

const UnknownItemName = "Unknown Item"

type OrderItem struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type orderItemPayload struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	ItemName string  `json:"itemName"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// UnmarshalJSON accepts both "name" and the legacy "itemName".
func (i *OrderItem) UnmarshalJSON(data []byte) error {
	var p orderItemPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	name := p.Name
	if strings.TrimSpace(name) == "" {
		name = p.ItemName
	}

	*i = OrderItem{
		ItemID:   p.ItemID,
		Name:     name,
		Quantity: p.Quantity,
		Price:    p.Price,
	}
	return nil
}

func (i OrderItem) DisplayName() string {
	if strings.TrimSpace(i.Name) == "" {
		return UnknownItemName
	}
	return i.Name
}

func (i OrderItem) LineTotal() float64 {
	return float64(i.Quantity) * i.Price
}
