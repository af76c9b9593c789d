package store_test

import (
	"context"

	"github.com/kubev2v/profit-planner/internal/config"
	"github.com/kubev2v/profit-planner/internal/store"
	"github.com/kubev2v/profit-planner/internal/store/model"
	"github.com/kubev2v/profit-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("sale store", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	sample := model.SaleList{
		{Segment: "Government", Country: "Canada", Product: "Carretera", UnitsSold: 1618.5, Sales: 32370, Profit: 16185, Month: 1, Year: 2014},
		{Segment: "Government", Country: "Germany", Product: "Carretera", UnitsSold: 1321, Sales: 26420, Profit: 13210, Month: 1, Year: 2014},
		{Segment: "Midmarket", Country: "France", Product: "Carretera", UnitsSold: 2178, Sales: 32670, Profit: 10890, Month: 6, Year: 2014},
		{Segment: "Midmarket", Country: "Germany", Product: "Carretera", UnitsSold: 888, Sales: 13320, Profit: 4440, Month: 6, Year: 2014},
		{Segment: "Midmarket", Country: "Mexico", Product: "Carretera", UnitsSold: 2470, Sales: 37050, Profit: 12350, Month: 6, Year: 2013},
		{Segment: "Government", Country: "Mexico", Product: "Paseo", UnitsSold: 1513, Sales: 529550, Profit: 136170, Month: 12, Year: 2013},
	}

	BeforeAll(func() {
		cfg := config.NewDefault()
		cfg.Database.Name = "file:sales?mode=memory&cache=shared"
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		Expect(migrations.MigrateStore(db, cfg.Database.Dialect(), "")).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
	})

	BeforeEach(func() {
		rows := make(model.SaleList, len(sample))
		copy(rows, sample)
		n, err := s.Sale().CreateBatch(context.TODO(), rows)
		Expect(err).To(BeNil())
		Expect(n).To(Equal(int64(len(sample))))
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM sales;")
	})

	Context("CreateBatch", func() {
		It("accepts an empty batch", func() {
			n, err := s.Sale().CreateBatch(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(n).To(BeZero())
		})
	})

	Context("Count", func() {
		It("counts every row", func() {
			count, err := s.Sale().Count(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(6)))
		})

		It("counts filtered rows", func() {
			count, err := s.Sale().Count(context.TODO(), store.NewSaleQueryFilter().ByCountry("germany").ByYear(2014))
			Expect(err).To(BeNil())
			Expect(count).To(Equal(int64(2)))
		})
	})

	Context("DeleteAll", func() {
		It("removes every row", func() {
			n, err := s.Sale().DeleteAll(context.TODO())
			Expect(err).To(BeNil())
			Expect(n).To(Equal(int64(6)))

			count, err := s.Sale().Count(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(count).To(BeZero())
		})
	})

	Context("Overview", func() {
		It("sums the whole dataset", func() {
			o, err := s.Sale().Overview(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(o.Records).To(Equal(int64(6)))
			Expect(o.TotalSales).To(BeNumerically("~", 671380, 1e-6))
			Expect(o.TotalProfit).To(BeNumerically("~", 193245, 1e-6))
			Expect(o.UnitsSold).To(BeNumerically("~", 9988.5, 1e-6))
		})

		It("returns zeros on an empty dataset", func() {
			gormdb.Exec("DELETE FROM sales;")
			o, err := s.Sale().Overview(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(o).To(Equal(model.Overview{}))
			Expect(o.AvgMarginPct()).To(BeZero())
		})

		It("applies the segment filter", func() {
			o, err := s.Sale().Overview(context.TODO(), store.NewSaleQueryFilter().BySegment("Midmarket"))
			Expect(err).To(BeNil())
			Expect(o.Records).To(Equal(int64(3)))
			Expect(o.TotalSales).To(BeNumerically("~", 83040, 1e-6))
		})
	})

	Context("YearlyTotals", func() {
		It("groups by year in ascending order", func() {
			totals, err := s.Sale().YearlyTotals(context.TODO(), nil)
			Expect(err).To(BeNil())
			Expect(totals).To(HaveLen(2))
			Expect(totals[0].Year).To(Equal(2013))
			Expect(totals[0].Sales).To(BeNumerically("~", 566600, 1e-6))
			Expect(totals[0].Profit).To(BeNumerically("~", 148520, 1e-6))
			Expect(totals[1].Year).To(Equal(2014))
			Expect(totals[1].Sales).To(BeNumerically("~", 104780, 1e-6))
		})
	})

	Context("TopCountries", func() {
		It("orders by sales and applies the limit", func() {
			top, err := s.Sale().TopCountries(context.TODO(), nil, 2)
			Expect(err).To(BeNil())
			Expect(top).To(HaveLen(2))
			Expect(top[0].Country).To(Equal("Mexico"))
			Expect(top[0].Sales).To(BeNumerically("~", 566600, 1e-6))
			Expect(top[1].Country).To(Equal("Germany"))
			Expect(top[1].Sales).To(BeNumerically("~", 39740, 1e-6))
		})

		It("returns every country without a limit", func() {
			top, err := s.Sale().TopCountries(context.TODO(), nil, 0)
			Expect(err).To(BeNil())
			Expect(top).To(HaveLen(4))
		})

		It("breaks ties by country name", func() {
			gormdb.Exec("DELETE FROM sales;")
			_, err := s.Sale().CreateBatch(context.TODO(), model.SaleList{
				{Country: "Mexico", Sales: 10, Year: 2014},
				{Country: "Canada", Sales: 10, Year: 2014},
			})
			Expect(err).To(BeNil())

			top, err := s.Sale().TopCountries(context.TODO(), nil, 10)
			Expect(err).To(BeNil())
			Expect(top).To(HaveLen(2))
			Expect(top[0].Country).To(Equal("Canada"))
			Expect(top[1].Country).To(Equal("Mexico"))
		})
	})
})
