package mathutil

// Split breaks a settlement price into the marketplace fee, the collection
// royalty and the seller proceeds, with both fee and royalty expressed in
// basis points (ie. 0.25% = 25). Fee and royalty are rounded down, the
// integer remainder accrues to the seller, so that
// fee + royalty + proceeds == price always holds.
//
// Split is total: callers must guarantee feeBps + royaltyBps <= 10000 by
// validating the two rates at the point they are configured.
func Split(price, feeBps, royaltyBps uint64) (fee, royalty, proceeds uint64) {
	fee = Mul(price, feeBps).DivRound(TenThousandsDecimal, 16).Floor().BigInt().Uint64()
	royalty = Mul(price, royaltyBps).DivRound(TenThousandsDecimal, 16).Floor().BigInt().Uint64()
	proceeds = price - fee - royalty
	return
}
