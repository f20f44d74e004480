// Test helpers for code that needs throwaway keypairs
package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Random returns a fresh keypair, panicking on failure. Only use it in
// tests; production code should handle the error via RandomCanFail.
func Random() *Full {
	kp, err := stellar.Random()
	if err != nil {
		panic(err)
	}
	return kp
}
