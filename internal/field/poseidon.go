package field

import (
	"fmt"
	"math/big"

	"github.com/iden3/go-iden3-crypto/poseidon"
)

// Poseidon1 is H for arity 1: poseidon_1(x).
func Poseidon1(x F) F {
	out, err := poseidon.Hash([]*big.Int{BigInt(x)})
	if err != nil {
		// poseidon.Hash only errors on arity out of [1,16]; arity 1 never does.
		panic(fmt.Sprintf("field: poseidon arity-1 hash failed: %v", err))
	}
	return fromBigInt(out)
}

// Poseidon2 is H for arity 2: poseidon_2(a, b), the two-to-one sponge step
// used by DataHasher.
func Poseidon2(a, b F) F {
	out, err := poseidon.Hash([]*big.Int{BigInt(a), BigInt(b)})
	if err != nil {
		panic(fmt.Sprintf("field: poseidon arity-2 hash failed: %v", err))
	}
	return fromBigInt(out)
}

func fromBigInt(x *big.Int) F {
	var f F
	f.v.SetBigInt(x)
	return f
}
