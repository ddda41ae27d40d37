// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchentui

import (
	"encoding/json"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"

	"github.com/foodhall/kitchen/kitchen"
)

// renderOrderDetail pretty-prints order as indented JSON and
// syntax-highlights it for the detail pane.
func renderOrderDetail(order kitchen.Order, theme Theme) string {
	data, err := json.MarshalIndent(orderDetailView{
		ID:     order.ID,
		Temp:   string(order.Temp),
		Name:   order.Name,
		Extra:  order.Extra,
		Cooked: order.Cooked,
	}, "", "  ")
	if err != nil {
		return lipgloss.NewStyle().Foreground(theme.LogError).Render(err.Error())
	}

	var buffer strings.Builder
	if err := quick.Highlight(&buffer, string(data), "json", "terminal256", "monokai"); err != nil {
		return string(data)
	}
	return buffer.String()
}

// orderDetailView controls field order and omits the pickup bookkeeping
// fields (PickupSuccessful) that are internal to the placement algorithm
// rather than order content.
type orderDetailView struct {
	ID     string         `json:"id"`
	Temp   string         `json:"temp"`
	Name   string         `json:"name,omitempty"`
	Extra  map[string]any `json:"extra,omitempty"`
	Cooked bool           `json:"cooked"`
}
