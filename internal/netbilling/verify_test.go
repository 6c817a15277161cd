package netbilling

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testIntegrityKey = "s3cr3t-integrity"

func signedReturn(t *testing.T) *Values {
	t.Helper()

	vs := NewValues()
	vs.SetString(FieldAccountAndSitetag, "123456789012:shop")
	vs.SetString(FieldTransactionID, "114000000001")
	vs.SetString(FieldStatusCode, "1")
	vs.SetString("Ecom_Cost_Total", "9.95")
	vs.SetString("Ecom_BillTo_Online_Email", "alice@example.com")
	vs.SetString(FieldHashFields, "Ecom_Cost_Total Ecom_BillTo_Online_Email")

	sum := md5.Sum([]byte(testIntegrityKey + "114000000001" + "1" + "9.95" + "alice@example.com"))
	vs.SetString(FieldProofOfPurchase, strings.ToUpper(hex.EncodeToString(sum[:])))
	return vs
}

func TestProofOfPurchaseMatchesGatewayConstruction(t *testing.T) {
	t.Parallel()

	vs := signedReturn(t)
	want := field(vs, FieldProofOfPurchase)
	require.Equal(t, want, ProofOfPurchase(vs, testIntegrityKey))
	require.Equal(t, strings.ToUpper(want), want)
	require.Len(t, want, 32)
}

func TestVerifyPaymentReturnAccepts(t *testing.T) {
	t.Parallel()

	site := SiteConfig{AccountID: "123456789012", SiteTag: "shop", IntegrityKey: testIntegrityKey}
	require.NoError(t, VerifyPaymentReturn(signedReturn(t), site))
}

func TestVerifyPaymentReturnRejectsAnyMutation(t *testing.T) {
	t.Parallel()

	site := SiteConfig{IntegrityKey: testIntegrityKey}
	for _, name := range []string{FieldTransactionID, FieldStatusCode, "Ecom_Cost_Total", "Ecom_BillTo_Online_Email"} {
		vs := signedReturn(t)
		vs.SetString(name, field(vs, name)+"x")
		require.ErrorIs(t, VerifyPaymentReturn(vs, site), ErrAccessDenied, name)
	}

	vs := signedReturn(t)
	proof := []byte(field(vs, FieldProofOfPurchase))
	if proof[0] == 'A' {
		proof[0] = 'B'
	} else {
		proof[0] = 'A'
	}
	vs.SetString(FieldProofOfPurchase, string(proof))
	require.ErrorIs(t, VerifyPaymentReturn(vs, site), ErrAccessDenied)
}

func TestVerifyPaymentReturnRejectsWrongKey(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, VerifyPaymentReturn(signedReturn(t), SiteConfig{IntegrityKey: "other"}), ErrAccessDenied)
}

func TestVerifyPaymentReturnRejectsMissingProof(t *testing.T) {
	t.Parallel()

	vs := signedReturn(t)
	vs.Delete(FieldProofOfPurchase)
	require.ErrorIs(t, VerifyPaymentReturn(vs, SiteConfig{IntegrityKey: testIntegrityKey}), ErrAccessDenied)

	vs.SetString(FieldProofOfPurchase, "")
	require.ErrorIs(t, VerifyPaymentReturn(vs, SiteConfig{IntegrityKey: testIntegrityKey}), ErrAccessDenied)
}

func TestVerifyPaymentReturnRejectsDroppedHashField(t *testing.T) {
	t.Parallel()

	vs := signedReturn(t)
	vs.Delete("Ecom_BillTo_Online_Email")
	require.ErrorIs(t, VerifyPaymentReturn(vs, SiteConfig{IntegrityKey: testIntegrityKey}), ErrAccessDenied)
}

func TestProofOfPurchaseSkipsAbsentAndBlankFieldNames(t *testing.T) {
	t.Parallel()

	vs := NewValues()
	vs.SetString(FieldTransactionID, "7")
	vs.SetString(FieldStatusCode, "0")
	vs.SetString("A", "x")
	vs.SetString(FieldHashFields, "A  Missing ")

	sum := md5.Sum([]byte("k" + "7" + "0" + "x"))
	require.Equal(t, strings.ToUpper(hex.EncodeToString(sum[:])), ProofOfPurchase(vs, "k"))
}

func TestSiteTagFromAccount(t *testing.T) {
	t.Parallel()

	require.Equal(t, "shop", SiteTagFromAccount("123:shop"))
	require.Equal(t, "shop", SiteTagFromAccount("123:shop:extra"))
	require.Equal(t, "", SiteTagFromAccount("123"))
	require.Equal(t, "", SiteTagFromAccount(""))
}
