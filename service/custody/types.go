package custody

import (
	"fmt"
	"strings"
)

const (
	activityCreateSubOrganization = "ACTIVITY_TYPE_CREATE_SUB_ORGANIZATION_V4"
	activitySignTransaction       = "ACTIVITY_TYPE_SIGN_TRANSACTION_V2"
	activityStatusCompleted       = "ACTIVITY_STATUS_COMPLETED"

	curveSecp256k1          = "CURVE_SECP256K1"
	pathFormatBIP32         = "PATH_FORMAT_BIP32"
	addressFormatEthereum   = "ADDRESS_FORMAT_ETHEREUM"
	transactionTypeEthereum = "TRANSACTION_TYPE_ETHEREUM"
)

// Error is the error body returned by the custody API.
type Error struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("custody api %d: code %d: %s", e.Status, e.Code, e.Message)
}

type ActivityError struct {
	ID     string
	Type   string
	Status string
}

func (e *ActivityError) Error() string {
	return fmt.Sprintf("activity %s (%s) ended with status %s", e.ID, e.Type, e.Status)
}

type activityRequest struct {
	Type           string `json:"type"`
	TimestampMs    string `json:"timestampMs"`
	OrganizationID string `json:"organizationId"`
	Parameters     any    `json:"parameters"`
}

type attestation struct {
	CredentialID      string   `json:"credentialId"`
	ClientDataJSON    string   `json:"clientDataJson"`
	AttestationObject string   `json:"attestationObject"`
	Transports        []string `json:"transports"`
}

type authenticator struct {
	AuthenticatorName string      `json:"authenticatorName"`
	Challenge         string      `json:"challenge"`
	Attestation       attestation `json:"attestation"`
}

type rootUser struct {
	UserName       string          `json:"userName"`
	APIKeys        []any           `json:"apiKeys"`
	Authenticators []authenticator `json:"authenticators"`
	OauthProviders []any           `json:"oauthProviders"`
}

type walletAccountParams struct {
	Curve         string `json:"curve"`
	PathFormat    string `json:"pathFormat"`
	Path          string `json:"path"`
	AddressFormat string `json:"addressFormat"`
}

type walletParams struct {
	WalletName     string                `json:"walletName"`
	Accounts       []walletAccountParams `json:"accounts"`
	MnemonicLength int                   `json:"mnemonicLength"`
}

type createSubOrganizationParams struct {
	SubOrganizationName string       `json:"subOrganizationName"`
	RootQuorumThreshold int          `json:"rootQuorumThreshold"`
	RootUsers           []rootUser   `json:"rootUsers"`
	Wallet              walletParams `json:"wallet"`
}

type signTransactionParams struct {
	SignWith            string `json:"signWith"`
	UnsignedTransaction string `json:"unsignedTransaction"`
	Type                string `json:"type"`
}

type activityResponse struct {
	Activity struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Status string `json:"status"`
		Result struct {
			CreateSubOrganizationResultV4 *struct {
				SubOrganizationID string `json:"subOrganizationId"`
				Wallet            *struct {
					WalletID  string   `json:"walletId"`
					Addresses []string `json:"addresses"`
				} `json:"wallet"`
			} `json:"createSubOrganizationResultV4"`
			SignTransactionResult *struct {
				SignedTransaction string `json:"signedTransaction"`
			} `json:"signTransactionResult"`
		} `json:"result"`
	} `json:"activity"`
}

type organizationRequest struct {
	OrganizationID string `json:"organizationId"`
	WalletID       string `json:"walletId,omitempty"`
}

type whoamiResponse struct {
	OrganizationID   string `json:"organizationId"`
	OrganizationName string `json:"organizationName"`
	UserID           string `json:"userId"`
	Username         string `json:"username"`
}

type listWalletsResponse struct {
	Wallets []struct {
		WalletID   string `json:"walletId"`
		WalletName string `json:"walletName"`
	} `json:"wallets"`
}

type listWalletAccountsResponse struct {
	Accounts []struct {
		WalletID string `json:"walletId"`
		Address  string `json:"address"`
		Path     string `json:"path"`
	} `json:"accounts"`
}

// transport maps WebAuthn transport hints to the custody API enum.
func transport(t string) string {
	return "AUTHENTICATOR_TRANSPORT_" + strings.ToUpper(t)
}
