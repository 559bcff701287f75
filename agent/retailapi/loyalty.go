package retailapi

import (
	"math"
	"strings"
)

// Tier names, ordered from entry to top.
const (
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"
)

var tierDiscounts = map[string]float64{
	TierSilver:   0.10,
	TierGold:     0.15,
	TierPlatinum: 0.20,
}

var tierMultipliers = map[string]float64{
	TierSilver:   1.0,
	TierGold:     1.5,
	TierPlatinum: 2.0,
}

// Loyalty computes tier discounts, coupon redemption and points accrual.
type Loyalty struct {
	customers map[string]LoyaltyInfo
	coupons   map[string]Coupon
}

func NewLoyalty() *Loyalty {
	return &Loyalty{
		customers: seedCustomers(),
		coupons:   seedCoupons(),
	}
}

// Info returns the shopper's loyalty standing. Guests and unknown ids get an
// untiered zero-points profile.
func (l *Loyalty) Info(customerID string) LoyaltyInfo {
	if info, ok := l.customers[customerID]; ok {
		return info
	}
	return LoyaltyInfo{CustomerID: customerID, Name: "Guest", Tier: "", Points: 0}
}

// Coupons lists the coupons the shopper's tier can redeem.
func (l *Loyalty) Coupons(tier string) []Coupon {
	out := make([]Coupon, 0, len(l.coupons))
	for _, c := range l.coupons {
		if c.TierOnly != "" && c.TierOnly != tier {
			continue
		}
		out = append(out, c)
	}
	sortCoupons(out)
	return out
}

// Price computes the checkout breakdown. The tier discount applies to the
// subtotal, then the coupon applies to the remainder subject to its minimum
// order and cap. Invalid or ineligible coupons are ignored, not an error.
func (l *Loyalty) Price(customerID string, subtotal float64, couponCode string) PricingBreakdown {
	info := l.Info(customerID)

	pb := PricingBreakdown{Subtotal: subtotal, Tier: info.Tier}

	if rate, ok := tierDiscounts[info.Tier]; ok {
		pb.TierDiscount = round2(subtotal * rate)
	}
	afterTier := subtotal - pb.TierDiscount

	if couponCode != "" {
		code := strings.ToUpper(strings.TrimSpace(couponCode))
		if c, ok := l.coupons[code]; ok && l.eligible(c, info.Tier, afterTier) {
			discount := afterTier * c.DiscountPct / 100
			if c.MaxDiscount > 0 && discount > c.MaxDiscount {
				discount = c.MaxDiscount
			}
			pb.CouponApplied = code
			pb.CouponDiscount = round2(discount)
		}
	}

	pb.FinalAmount = round2(afterTier - pb.CouponDiscount)

	multiplier := tierMultipliers[info.Tier]
	if multiplier == 0 {
		multiplier = 1.0
	}
	pb.PointsEarned = int(pb.FinalAmount * 0.01 * multiplier)

	return pb
}

// AwardPoints credits earned points to the shopper's balance and returns the
// new balance. Guests accrue nothing.
func (l *Loyalty) AwardPoints(customerID string, points int) int {
	info, ok := l.customers[customerID]
	if !ok {
		return 0
	}
	info.Points += points
	l.customers[customerID] = info
	return info.Points
}

func (l *Loyalty) eligible(c Coupon, tier string, amount float64) bool {
	if c.TierOnly != "" && c.TierOnly != tier {
		return false
	}
	return amount >= c.MinOrder
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortCoupons(coupons []Coupon) {
	for i := 1; i < len(coupons); i++ {
		for j := i; j > 0 && coupons[j].Code < coupons[j-1].Code; j-- {
			coupons[j], coupons[j-1] = coupons[j-1], coupons[j]
		}
	}
}

func seedCustomers() map[string]LoyaltyInfo {
	return map[string]LoyaltyInfo{
		"CUST001": {CustomerID: "CUST001", Name: "Ananya Iyer", Tier: TierSilver, Points: 1250, TierDiscountRate: 0.10, PointsMultiplier: 1.0},
		"CUST002": {CustomerID: "CUST002", Name: "Rohan Mehta", Tier: TierGold, Points: 4800, TierDiscountRate: 0.15, PointsMultiplier: 1.5},
		"CUST003": {CustomerID: "CUST003", Name: "Priya Nair", Tier: TierPlatinum, Points: 12400, TierDiscountRate: 0.20, PointsMultiplier: 2.0},
	}
}

func seedCoupons() map[string]Coupon {
	return map[string]Coupon{
		"WELCOME10":  {Code: "WELCOME10", DiscountPct: 10, MinOrder: 500, MaxDiscount: 200, Description: "10% off your first order"},
		"FESTIVAL5":  {Code: "FESTIVAL5", DiscountPct: 5, MinOrder: 0, MaxDiscount: 500, Description: "Festive season 5% off"},
		"VIP15":      {Code: "VIP15", DiscountPct: 15, MinOrder: 2000, MaxDiscount: 1000, Description: "15% off orders above ₹2000", TierOnly: TierGold},
		"BIRTHDAY20": {Code: "BIRTHDAY20", DiscountPct: 20, MinOrder: 1000, MaxDiscount: 800, Description: "Birthday month special"},
		"PLATINUM25": {Code: "PLATINUM25", DiscountPct: 25, MinOrder: 3000, MaxDiscount: 2500, Description: "Platinum exclusive 25% off", TierOnly: TierPlatinum},
		"EXCLUSIVE30": {Code: "EXCLUSIVE30", DiscountPct: 30, MinOrder: 10000, MaxDiscount: 5000, Description: "Invite-only 30% off", TierOnly: TierPlatinum},
	}
}
