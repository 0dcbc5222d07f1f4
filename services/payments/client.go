package payments

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// AccountState is the capability snapshot reported by the payments
// platform for a connected account.
type AccountState struct {
	ID               string
	ChargesEnabled   bool
	PayoutsEnabled   bool
	DetailsSubmitted bool
	DisabledReason   string
	Requirements     []string
}

// ConnectClient abstracts the payments platform so the lifecycle service
// can be exercised with a test double instead of a live API.
type ConnectClient interface {
	CreateAccount(ctx context.Context, email, businessName string) (string, error)
	GetAccount(ctx context.Context, accountID string) (*AccountState, error)
	CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)
}

// StripeConnectClient implements ConnectClient over Stripe Connect
// Express accounts. The API client is injected, never ambient.
type StripeConnectClient struct {
	api *client.API
}

// NewStripeConnectClient builds a client bound to the given secret key.
func NewStripeConnectClient(secretKey string) *StripeConnectClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeConnectClient{api: api}
}

func (c *StripeConnectClient) CreateAccount(ctx context.Context, email, businessName string) (string, error) {
	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
		BusinessProfile: &stripe.AccountBusinessProfileParams{
			Name: stripe.String(businessName),
		},
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
				Requested: stripe.Bool(true),
			},
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
	}
	params.Context = ctx

	acct, err := c.api.Accounts.New(params)
	if err != nil {
		return "", categorizeStripeError(err)
	}
	return acct.ID, nil
}

func (c *StripeConnectClient) GetAccount(ctx context.Context, accountID string) (*AccountState, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx

	acct, err := c.api.Accounts.GetByID(accountID, params)
	if err != nil {
		return nil, categorizeStripeError(err)
	}

	state := &AccountState{
		ID:               acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}
	if acct.Requirements != nil {
		state.DisabledReason = string(acct.Requirements.DisabledReason)
		state.Requirements = acct.Requirements.CurrentlyDue
	}
	return state, nil
}

func (c *StripeConnectClient) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx

	link, err := c.api.AccountLinks.New(params)
	if err != nil {
		return "", categorizeStripeError(err)
	}
	return link.URL, nil
}
