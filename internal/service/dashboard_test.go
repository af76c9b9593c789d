package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/kubev2v/profit-planner/internal/service"
	"github.com/kubev2v/profit-planner/internal/store/model"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const salesCSV = `segment,country,product,units_sold,sales,profit,month,year
Government,Canada,Carretera,1618.5,32370,16185,1,2014
Midmarket,France,Paseo,2178,32670,10890,6,2014
`

var _ = Describe("DashboardService", func() {
	var (
		mockStore    *MockStore
		dashboardSrv *service.DashboardService
		ctx          context.Context
	)

	BeforeEach(func() {
		mockStore = NewMockStore()
		dashboardSrv = service.NewDashboardService(mockStore)
		ctx = context.Background()
	})

	Describe("Overview", func() {
		It("returns the store overview", func() {
			mockStore.overview = model.Overview{Records: 2, TotalSales: 1000, TotalProfit: 150, UnitsSold: 30}

			overview, err := dashboardSrv.Overview(ctx, service.DashboardFilter{})

			Expect(err).To(BeNil())
			Expect(overview.Records).To(Equal(int64(2)))
			Expect(overview.AvgMarginPct()).To(BeNumerically("~", 15, 1e-9))
			Expect(mockStore.lastFilter.QueryFn).To(BeEmpty())
		})

		It("passes the filters to the store", func() {
			_, err := dashboardSrv.Overview(ctx, service.DashboardFilter{Country: "France", Segment: "Government", Year: 2014})

			Expect(err).To(BeNil())
			Expect(mockStore.lastFilter.QueryFn).To(HaveLen(3))
		})

		It("wraps store errors", func() {
			mockStore.getError = errors.New("db down")

			_, err := dashboardSrv.Overview(ctx, service.DashboardFilter{})

			Expect(err).NotTo(BeNil())
			Expect(err.Error()).To(ContainSubstring("failed to compute overview: db down"))
		})
	})

	Describe("YearlyTrend", func() {
		It("returns yearly totals", func() {
			mockStore.yearly = []model.YearlyTotal{{Year: 2013, Sales: 10}, {Year: 2014, Sales: 20}}

			totals, err := dashboardSrv.YearlyTrend(ctx, service.DashboardFilter{})

			Expect(err).To(BeNil())
			Expect(totals).To(HaveLen(2))
			Expect(totals[0].Year).To(Equal(2013))
		})
	})

	Describe("TopCountries", func() {
		It("defaults the limit", func() {
			_, err := dashboardSrv.TopCountries(ctx, service.DashboardFilter{}, 0)

			Expect(err).To(BeNil())
			Expect(mockStore.lastLimit).To(Equal(service.DefaultCountriesLimit))
		})

		It("keeps an explicit limit", func() {
			_, err := dashboardSrv.TopCountries(ctx, service.DashboardFilter{}, 3)

			Expect(err).To(BeNil())
			Expect(mockStore.lastLimit).To(Equal(3))
		})

		It("rejects a limit above the maximum", func() {
			_, err := dashboardSrv.TopCountries(ctx, service.DashboardFilter{}, service.MaxCountriesLimit+1)

			var invalid *service.ErrInvalidLimit
			Expect(errors.As(err, &invalid)).To(BeTrue())
		})
	})

	Describe("ImportDataset", func() {
		It("replaces the stored sales in a transaction", func() {
			mockStore.sales = model.SaleList{{Country: "Old"}}
			path := filepath.Join(GinkgoT().TempDir(), "sales.csv")
			Expect(os.WriteFile(path, []byte(salesCSV), 0600)).To(Succeed())

			n, err := dashboardSrv.ImportDataset(ctx, path)

			Expect(err).To(BeNil())
			Expect(n).To(Equal(int64(2)))
			Expect(mockStore.txStarted).To(Equal(1))
			Expect(mockStore.sales).To(HaveLen(2))
			Expect(mockStore.sales[0].Country).To(Equal("Canada"))
		})

		It("rejects a dataset with no records", func() {
			path := filepath.Join(GinkgoT().TempDir(), "sales.csv")
			Expect(os.WriteFile(path, []byte("country,units_sold,sales,profit,year\n"), 0600)).To(Succeed())

			_, err := dashboardSrv.ImportDataset(ctx, path)

			var empty *service.ErrDatasetEmpty
			Expect(errors.As(err, &empty)).To(BeTrue())
			Expect(mockStore.txStarted).To(BeZero())
		})

		It("fails on a missing file", func() {
			_, err := dashboardSrv.ImportDataset(ctx, filepath.Join(GinkgoT().TempDir(), "missing.csv"))

			Expect(err).NotTo(BeNil())
		})

		It("fails when the insert fails", func() {
			mockStore.createError = errors.New("disk full")
			path := filepath.Join(GinkgoT().TempDir(), "sales.csv")
			Expect(os.WriteFile(path, []byte(salesCSV), 0600)).To(Succeed())

			_, err := dashboardSrv.ImportDataset(ctx, path)

			Expect(err).NotTo(BeNil())
			Expect(err.Error()).To(ContainSubstring("failed to insert sales: disk full"))
		})
	})

	Describe("UploadDataset", func() {
		It("imports uploaded content", func() {
			n, err := dashboardSrv.UploadDataset(ctx, "upload.csv", strings.NewReader(salesCSV))

			Expect(err).To(BeNil())
			Expect(n).To(Equal(int64(2)))
		})

		It("reports corrupted content", func() {
			_, err := dashboardSrv.UploadDataset(ctx, "upload.csv", strings.NewReader("country\nCanada\n"))

			var corrupted *service.ErrFileCorrupted
			Expect(errors.As(err, &corrupted)).To(BeTrue())
		})

		It("reports unsupported formats", func() {
			_, err := dashboardSrv.UploadDataset(ctx, "upload.pdf", strings.NewReader("%PDF"))

			var corrupted *service.ErrFileCorrupted
			Expect(errors.As(err, &corrupted)).To(BeTrue())
		})
	})
})
