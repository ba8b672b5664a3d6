package payments

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

// DepositLink is what the booking flow hands back to the client: a hosted
// checkout URL for the studio's deposit.
type DepositLink struct {
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

type MercadoPago struct {
	prefs preference.Client
}

// NewMercadoPago returns nil when no access token is configured; callers
// treat a nil gateway as "deposits disabled".
func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &MercadoPago{prefs: preference.NewClient(cfg)}, nil
}

// CreateDepositPreference creates a checkout preference for the booking's
// deposit, tagged with the booking code for later reconciliation.
func (g *MercadoPago) CreateDepositPreference(
	ctx context.Context,
	bk *models.Booking,
	amount float64,
) (*DepositLink, error) {

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:       "Booking deposit " + bk.BookingCode,
				Description: bk.DesignName,
				Quantity:    1,
				UnitPrice:   amount,
				CurrencyID:  "BRL",
			},
		},
		ExternalReference: bk.BookingCode,
	}

	resp, err := g.prefs.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	return &DepositLink{
		PreferenceID: resp.ID,
		InitPoint:    resp.InitPoint,
	}, nil
}
