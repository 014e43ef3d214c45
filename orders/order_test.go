package orders

import (
	"testing"
)

func TestDraftNormalize(t *testing.T) {
	address := &Address{Street: "12 Nile St", City: "Cairo", ZipCode: "11511"}
	pickup := &PickupInfo{Location: "123 Kitchen Street, Cairo, Egypt", Instructions: "Ask at the counter"}

	tests := []struct {
		name           string
		draft          Draft
		wantType       OrderType
		wantAddress    bool
		wantPickupInfo bool
	}{
		{
			name:        "deliveryKeepsAddressDropsPickupInfo",
			draft:       Draft{Type: TypeDelivery, CustomerInfo: CustomerInfo{Address: address}, PickupInfo: pickup},
			wantType:    TypeDelivery,
			wantAddress: true,
		},
		{
			name:           "pickupKeepsPickupInfoDropsAddress",
			draft:          Draft{Type: TypePickup, CustomerInfo: CustomerInfo{Address: address}, PickupInfo: pickup},
			wantType:       TypePickup,
			wantPickupInfo: true,
		},
		{
			name:     "unsetTypeDefaultsToDelivery",
			draft:    Draft{},
			wantType: TypeDelivery,
		},
		{
			name:     "unknownTypeDefaultsToDelivery",
			draft:    Draft{Type: OrderType("drone"), PickupInfo: pickup},
			wantType: TypeDelivery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.draft.normalize()

			if got.Type != tt.wantType {
				t.Errorf("normalize() Type = %q, want %q", got.Type, tt.wantType)
			}
			if (got.CustomerInfo.Address != nil) != tt.wantAddress {
				t.Errorf("normalize() Address present = %v, want %v", got.CustomerInfo.Address != nil, tt.wantAddress)
			}
			if (got.PickupInfo != nil) != tt.wantPickupInfo {
				t.Errorf("normalize() PickupInfo present = %v, want %v", got.PickupInfo != nil, tt.wantPickupInfo)
			}
		})
	}
}

func TestOrderClone(t *testing.T) {
	original := Order{
		ID:   "123456",
		Type: TypeDelivery,
		Items: []OrderItem{
			{
				ID:       "koshary",
				Quantity: 2,
				Customization: &Customization{
					AddOns: []AddOn{{Name: "Extra Sauce", Price: 30}},
				},
			},
		},
		CustomerInfo: CustomerInfo{
			Name:    "Laila",
			Address: &Address{Street: "12 Nile St", City: "Cairo"},
		},
	}

	copied := original.clone()
	copied.Items[0].Customization.AddOns[0].Price = 999
	copied.CustomerInfo.Address.City = "Giza"

	if original.Items[0].Customization.AddOns[0].Price == 999 {
		t.Error("clone() shares item customization with the original")
	}
	if original.CustomerInfo.Address.City == "Giza" {
		t.Error("clone() shares address with the original")
	}
}
