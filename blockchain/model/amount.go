package model

import "fmt"

// SatoshiPerCoin is the number of base units in one coin.
const SatoshiPerCoin = 100_000_000

// Amount is an integer number of satoshis. It is never converted through floating
// point; String renders it with exactly eight decimal places.
type Amount uint64

func (a Amount) Satoshis() uint64 { return uint64(a) }

func (a Amount) String() string {
	return fmt.Sprintf("%d.%08d", uint64(a)/SatoshiPerCoin, uint64(a)%SatoshiPerCoin)
}
