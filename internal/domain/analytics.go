package domain

import (
	"sort"
	"time"
)

// The functions below are pure reductions used by the analytics report.
// Callers pass one consistent read of each collection.

func TotalRevenue(orders []Order) int64 {
	var total int64
	for _, o := range orders {
		if o.PaymentStatus == PaymentVerified {
			total += o.TotalPrice
		}
	}
	return total
}

// ProductCosts sums cost basis over verified orders. Line items whose
// product has been removed from the catalog contribute nothing.
func ProductCosts(orders []Order, products []Product) int64 {
	cost := make(map[uint64]int64, len(products))
	for _, p := range products {
		cost[p.ID] = p.CostPrice
	}
	var total int64
	for _, o := range orders {
		if o.PaymentStatus != PaymentVerified {
			continue
		}
		for _, it := range o.Items {
			total += LineTotal(cost[it.ProductID], it.Quantity)
		}
	}
	return total
}

func TotalExpenses(expenses []Expense) int64 {
	var total int64
	for _, e := range expenses {
		total += e.Amount
	}
	return total
}

func NetProfit(revenue, expenses, productCosts int64) int64 {
	return revenue - expenses - productCosts
}

type DailyRevenue struct {
	Date       string `json:"date"`
	Revenue    int64  `json:"revenue"`
	OrderCount int    `json:"orderCount"`
}

// DailyRevenueSeries covers the last days calendar days up to and including
// the day of now in loc, oldest first.
func DailyRevenueSeries(orders []Order, now time.Time, days int, loc *time.Location) []DailyRevenue {
	if days < 1 {
		days = 7
	}
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	out := make([]DailyRevenue, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, i-days+1)
		key := day.Format(time.DateOnly)
		out[i] = DailyRevenue{Date: key}
		index[key] = i
	}

	for _, o := range orders {
		if o.PaymentStatus != PaymentVerified {
			continue
		}
		key := o.CreatedAt.In(loc).Format(time.DateOnly)
		if i, ok := index[key]; ok {
			out[i].Revenue += o.TotalPrice
			out[i].OrderCount++
		}
	}
	return out
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

func CategoryDistribution(products []Product) []CategoryCount {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func PaymentStatusBreakdown(orders []Order) map[PaymentStatus]int {
	out := map[PaymentStatus]int{
		PaymentPending:  0,
		PaymentVerified: 0,
		PaymentFailed:   0,
	}
	for _, o := range orders {
		out[o.PaymentStatus]++
	}
	return out
}

type ProductSales struct {
	ProductID uint64 `json:"productId"`
	Name      string `json:"name"`
	Units     int    `json:"units"`
	Revenue   int64  `json:"revenue"`
}

// TopProducts ranks products by verified line-item revenue.
func TopProducts(orders []Order, limit int) []ProductSales {
	byID := make(map[uint64]*ProductSales)
	for _, o := range orders {
		if o.PaymentStatus != PaymentVerified {
			continue
		}
		for _, it := range o.Items {
			ps, ok := byID[it.ProductID]
			if !ok {
				ps = &ProductSales{ProductID: it.ProductID, Name: it.Name}
				byID[it.ProductID] = ps
			}
			ps.Units += it.Quantity
			ps.Revenue += it.Total()
		}
	}
	out := make([]ProductSales, 0, len(byID))
	for _, ps := range byID {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type Report struct {
	TotalRevenue         int64                 `json:"totalRevenue"`
	ProductCosts         int64                 `json:"productCosts"`
	TotalExpenses        int64                 `json:"totalExpenses"`
	NetProfit            int64                 `json:"netProfit"`
	DailyRevenue         []DailyRevenue        `json:"dailyRevenue"`
	CategoryDistribution []CategoryCount       `json:"categoryDistribution"`
	PaymentStatus        map[PaymentStatus]int `json:"paymentStatus"`
	TopProducts          []ProductSales        `json:"topProducts"`
	OrderCount           int                   `json:"orderCount"`
	GeneratedAt          time.Time             `json:"generatedAt"`
}

// BuildReport computes every aggregate from a single snapshot of the inputs.
func BuildReport(orders []Order, expenses []Expense, products []Product, now time.Time, days int, loc *time.Location) Report {
	revenue := TotalRevenue(orders)
	costs := ProductCosts(orders, products)
	spent := TotalExpenses(expenses)
	return Report{
		TotalRevenue:         revenue,
		ProductCosts:         costs,
		TotalExpenses:        spent,
		NetProfit:            NetProfit(revenue, spent, costs),
		DailyRevenue:         DailyRevenueSeries(orders, now, days, loc),
		CategoryDistribution: CategoryDistribution(products),
		PaymentStatus:        PaymentStatusBreakdown(orders),
		TopProducts:          TopProducts(orders, 5),
		OrderCount:           len(orders),
		GeneratedAt:          now,
	}
}
