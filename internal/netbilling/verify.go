package netbilling

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// Hosted payment page return fields.
const (
	FieldAccountAndSitetag = "Ecom_Ezic_AccountAndSitetag"
	FieldHashFields        = "Ecom_Ezic_Security_HashFields"
	FieldProofOfPurchase   = "Ecom_Ezic_ProofOfPurchase_MD5"
	FieldTransactionID     = "Ecom_Ezic_Response_TransactionID"
	FieldStatusCode        = "Ecom_Ezic_Response_StatusCode"
)

// SiteTagFromAccount extracts the site tag from an "account:site" value.
func SiteTagFromAccount(accountAndSitetag string) string {
	parts := strings.Split(accountAndSitetag, ":")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// ProofOfPurchase computes the uppercase MD5 the gateway signs a hosted
// payment return with: integrity key, transaction id, status code, then the
// value of each field named in the space separated HashFields list.
func ProofOfPurchase(query *Values, integrityKey string) string {
	var b strings.Builder
	b.WriteString(integrityKey)
	b.WriteString(field(query, FieldTransactionID))
	b.WriteString(field(query, FieldStatusCode))
	for _, name := range strings.Split(field(query, FieldHashFields), " ") {
		if name == "" {
			continue
		}
		if v, ok := query.Get(name); ok {
			b.WriteString(v.String())
		}
	}
	sum := md5.Sum([]byte(b.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// VerifyPaymentReturn checks the proof of purchase of a hosted payment
// return against the site's integrity key. It returns ErrAccessDenied on any
// mismatch and nothing more specific.
func VerifyPaymentReturn(query *Values, site SiteConfig) error {
	got, ok := query.Get(FieldProofOfPurchase)
	if !ok || got.String() == "" {
		return ErrAccessDenied
	}
	if got.String() != ProofOfPurchase(query, site.IntegrityKey) {
		return ErrAccessDenied
	}
	return nil
}

func field(query *Values, name string) string {
	v, _ := query.Get(name)
	return v.String()
}
