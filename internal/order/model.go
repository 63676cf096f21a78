package order

import "encoding/json"

// AddonSelection is one selected addon inside an addon group. The shape is
// client-defined (id, name, price, ...), so it stays a free-form object.
type AddonSelection map[string]any

// Customization is one variation+addon selection within an item line.
type Customization struct {
	Variation map[string]any              `json:"variation,omitempty"`
	Addons    map[string][]AddonSelection `json:"addons,omitempty"`
	Qty       int                         `json:"qty"`
	Price     float64                     `json:"price"`
}

// Line holds every customization ordered for a single menu item.
// Name is only populated for open items that have no menu lookup.
type Line struct {
	Name           string          `json:"name,omitempty"`
	Customizations []Customization `json:"customizations"`
}

// Items is the full cart for one table, keyed by menu item id.
type Items map[string]Line

// UnmarshalJSON tolerates malformed variation/addons payloads (a string or
// number where an object is expected) by treating them as empty. Merges must
// stay total functions even on junk client input.
func (c *Customization) UnmarshalJSON(data []byte) error {
	var raw struct {
		Variation json.RawMessage `json:"variation"`
		Addons    json.RawMessage `json:"addons"`
		Qty       int             `json:"qty"`
		Price     float64         `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.Qty = raw.Qty
	c.Price = raw.Price
	c.Variation = nil
	c.Addons = nil

	if len(raw.Variation) > 0 {
		var v map[string]any
		if err := json.Unmarshal(raw.Variation, &v); err == nil {
			c.Variation = v
		}
	}
	if len(raw.Addons) > 0 {
		var a map[string][]AddonSelection
		if err := json.Unmarshal(raw.Addons, &a); err == nil {
			c.Addons = a
		}
	}
	return nil
}

// TotalQty sums quantities across all customizations of the line.
func (l Line) TotalQty() int {
	total := 0
	for _, c := range l.Customizations {
		total += c.Qty
	}
	return total
}

// Clone returns a structural copy sharing no memory with the receiver.
func (c Customization) Clone() Customization {
	out := Customization{Qty: c.Qty, Price: c.Price}
	if c.Variation != nil {
		out.Variation = make(map[string]any, len(c.Variation))
		for k, v := range c.Variation {
			out.Variation[k] = v
		}
	}
	if c.Addons != nil {
		out.Addons = make(map[string][]AddonSelection, len(c.Addons))
		for group, selections := range c.Addons {
			copied := make([]AddonSelection, len(selections))
			for i, sel := range selections {
				dup := make(AddonSelection, len(sel))
				for k, v := range sel {
					dup[k] = v
				}
				copied[i] = dup
			}
			out.Addons[group] = copied
		}
	}
	return out
}

// Clone returns a structural copy of the line.
func (l Line) Clone() Line {
	out := Line{Name: l.Name}
	if l.Customizations != nil {
		out.Customizations = make([]Customization, len(l.Customizations))
		for i, c := range l.Customizations {
			out.Customizations[i] = c.Clone()
		}
	}
	return out
}

// Clone returns a structural copy of the whole cart. Callers re-read the base
// order after a merge, so copies across component boundaries are a correctness
// requirement, not an optimization.
func (it Items) Clone() Items {
	if it == nil {
		return Items{}
	}
	out := make(Items, len(it))
	for id, line := range it {
		out[id] = line.Clone()
	}
	return out
}
