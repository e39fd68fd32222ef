package launchpad

import "testing"

func fundingPool() *PoolState {
	return &PoolState{
		Status:        PoolStatusFunding,
		Supply:        1_000_000_000_000_000,
		TotalBaseSell: 793_100_000_000_000,
		VirtualBase:   1_073_025_605_596_382,
		VirtualQuote:  30_000_852_951_842,
		RealBase:      0,
		RealQuote:     0,
	}
}

func TestApplySlippage(t *testing.T) {
	cases := []struct {
		expected uint64
		bps      uint64
		want     uint64
	}{
		{1_000_000, 500, 950_000},
		{1_000_000, 1_000, 900_000},
		{1_000_000, 0, 1_000_000},
		{1_000_000, 10_000, 0},
		{0, 500, 0},
		{3, 500, 2}, // truncates toward zero
	}

	for _, tc := range cases {
		if got := ApplySlippage(tc.expected, tc.bps); got != tc.want {
			t.Errorf("ApplySlippage(%d, %d) = %d, want %d", tc.expected, tc.bps, got, tc.want)
		}
	}
}

func TestApplySlippageNoOverflow(t *testing.T) {
	// expected * (10000 - bps) exceeds uint64; the big.Int path must not wrap.
	const expected uint64 = 10_000_000_000_000_000_000
	const want uint64 = 9_500_000_000_000_000_000
	if got := ApplySlippage(expected, 500); got != want {
		t.Errorf("ApplySlippage(%d, 500) = %d, want %d", expected, got, want)
	}
}

func TestQuoteBuyExactIn(t *testing.T) {
	pool := fundingPool()

	out := QuoteBuyExactIn(pool, 1_000_000_000, 100)
	if out == 0 {
		t.Fatal("expected non-zero quote for 1 SOL buy")
	}
	if out >= pool.VirtualBase {
		t.Fatalf("quote %d exceeds virtual base reserve", out)
	}

	// More in, more out; but at worsening marginal price.
	bigger := QuoteBuyExactIn(pool, 2_000_000_000, 100)
	if bigger <= out {
		t.Errorf("larger buy quoted less: %d <= %d", bigger, out)
	}
	if bigger >= 2*out {
		t.Errorf("constant-product pricing should worsen with size: %d >= 2*%d", bigger, out)
	}
}

func TestQuoteBuyExactInCapsAtRemainingSell(t *testing.T) {
	pool := fundingPool()
	pool.RealBase = pool.TotalBaseSell - 1_000

	out := QuoteBuyExactIn(pool, 1_000_000_000_000, 0)
	if out != 1_000 {
		t.Errorf("quote should cap at remaining sellable base: got %d, want 1000", out)
	}
}

func TestQuoteBuyExactInSoldOutPool(t *testing.T) {
	pool := fundingPool()
	// RealBase beyond TotalBaseSell must quote zero, not underflow the
	// remaining-sell cap.
	pool.RealBase = pool.TotalBaseSell + 1

	if out := QuoteBuyExactIn(pool, 1_000_000_000, 0); out != 0 {
		t.Errorf("over-sold pool quoted %d, want 0", out)
	}

	pool.RealBase = pool.TotalBaseSell
	if out := QuoteBuyExactIn(pool, 1_000_000_000, 0); out != 0 {
		t.Errorf("sold-out pool quoted %d, want 0", out)
	}
}

func TestQuoteSellExactIn(t *testing.T) {
	pool := fundingPool()
	// Enough quote reserve that the clamp never triggers here.
	pool.RealQuote = 30_000_000_000

	out := QuoteSellExactIn(pool, 1_000_000_000_000, 100)
	if out == 0 {
		t.Fatal("expected non-zero quote")
	}
	if out >= pool.RealQuote {
		t.Fatalf("quote %d unexpectedly hit the reserve clamp %d", out, pool.RealQuote)
	}

	withoutFee := QuoteSellExactIn(pool, 1_000_000_000_000, 0)
	if withoutFee <= out {
		t.Errorf("fee should reduce proceeds: %d <= %d", withoutFee, out)
	}
}

func TestQuoteSellExactInCapsAtQuoteReserve(t *testing.T) {
	pool := fundingPool()
	pool.RealQuote = 10_000_000_000

	out := QuoteSellExactIn(pool, 1_000_000_000_000, 0)
	if out != pool.RealQuote {
		t.Errorf("quote should cap at the pool's quote reserve: got %d, want %d", out, pool.RealQuote)
	}
}

func TestQuoteZeroInputs(t *testing.T) {
	if QuoteBuyExactIn(nil, 1, 0) != 0 {
		t.Error("nil pool should quote zero")
	}
	if QuoteBuyExactIn(fundingPool(), 0, 0) != 0 {
		t.Error("zero amount should quote zero")
	}
	if QuoteSellExactIn(fundingPool(), 0, 0) != 0 {
		t.Error("zero amount should quote zero")
	}
}
