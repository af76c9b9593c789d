package store_test

import (
	"context"
	"errors"

	"github.com/kubev2v/profit-planner/internal/config"
	st "github.com/kubev2v/profit-planner/internal/store"
	"github.com/kubev2v/profit-planner/internal/store/model"
	"github.com/kubev2v/profit-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Store", Ordered, func() {
	var (
		store  st.Store
		gormDB *gorm.DB
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		cfg.Database.Name = "file:store?mode=memory&cache=shared"
		db, err := st.InitDB(cfg)
		Expect(err).To(BeNil())
		gormDB = db

		Expect(migrations.MigrateStore(db, cfg.Database.Dialect(), "")).To(BeNil())

		store = st.NewStore(db)
		Expect(store).ToNot(BeNil())
	})

	AfterAll(func() {
		store.Close()
	})

	Context("transaction", func() {
		It("inserts sales successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			n, err := store.Sale().CreateBatch(ctx, model.SaleList{{Country: "France", Year: 2014, Sales: 10}})
			Expect(err).To(BeNil())
			Expect(n).To(Equal(int64(1)))

			_, cerr := st.Commit(ctx)
			Expect(cerr).To(BeNil())

			count := 0
			err = gormDB.Raw("SELECT COUNT(*) from sales;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rolls back sales successfully", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			_, err = store.Sale().CreateBatch(ctx, model.SaleList{{Country: "France", Year: 2014, Sales: 10}})
			Expect(err).To(BeNil())

			count := 0
			err = st.FromContext(ctx).Raw("SELECT COUNT(*) from sales;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(1))

			_, rerr := st.Rollback(ctx)
			Expect(rerr).To(BeNil())

			count = -1
			err = gormDB.Raw("SELECT COUNT(*) from sales;").Scan(&count).Error
			Expect(err).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("joins an outer transaction", func() {
			ctx, err := store.NewTransactionContext(context.TODO())
			Expect(err).To(BeNil())

			inner, err := store.NewTransactionContext(ctx)
			Expect(err).To(BeNil())
			Expect(st.FromContext(inner)).To(BeIdenticalTo(st.FromContext(ctx)))

			_, err = st.Rollback(ctx)
			Expect(err).To(BeNil())
		})

		It("commits InTransaction work", func() {
			err := st.InTransaction(context.TODO(), store, func(ctx context.Context) error {
				_, err := store.Sale().CreateBatch(ctx, model.SaleList{{Country: "Mexico", Year: 2013}})
				return err
			})
			Expect(err).To(BeNil())

			count := 0
			Expect(gormDB.Raw("SELECT COUNT(*) from sales;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("rolls back InTransaction work on error", func() {
			failure := errors.New("insert failed")
			err := st.InTransaction(context.TODO(), store, func(ctx context.Context) error {
				if _, err := store.Sale().CreateBatch(ctx, model.SaleList{{Country: "Mexico", Year: 2013}}); err != nil {
					return err
				}
				return failure
			})
			Expect(err).To(MatchError(failure))

			count := -1
			Expect(gormDB.Raw("SELECT COUNT(*) from sales;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("leaves a nested InTransaction to the outer transaction", func() {
			failure := errors.New("outer failed")
			err := st.InTransaction(context.TODO(), store, func(ctx context.Context) error {
				nested := st.InTransaction(ctx, store, func(ctx context.Context) error {
					_, err := store.Sale().CreateBatch(ctx, model.SaleList{{Country: "Mexico", Year: 2013}})
					return err
				})
				Expect(nested).To(BeNil())
				Expect(st.FromContext(ctx)).ToNot(BeNil())
				return failure
			})
			Expect(err).To(MatchError(failure))

			count := -1
			Expect(gormDB.Raw("SELECT COUNT(*) from sales;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(0))
		})

		It("commits a nested InTransaction with the outer transaction", func() {
			err := st.InTransaction(context.TODO(), store, func(ctx context.Context) error {
				return st.InTransaction(ctx, store, func(ctx context.Context) error {
					_, err := store.Sale().CreateBatch(ctx, model.SaleList{{Country: "Mexico", Year: 2013}})
					return err
				})
			})
			Expect(err).To(BeNil())

			count := 0
			Expect(gormDB.Raw("SELECT COUNT(*) from sales;").Scan(&count).Error).To(BeNil())
			Expect(count).To(Equal(1))
		})

		It("commit without transaction is a no-op", func() {
			ctx, err := st.Commit(context.TODO())
			Expect(err).To(BeNil())
			Expect(st.FromContext(ctx)).To(BeNil())
		})

		AfterEach(func() {
			gormDB.Exec("DELETE FROM sales;")
		})
	})

	Context("statistics", func() {
		It("reports overview and sales by country", func() {
			_, err := store.Sale().CreateBatch(context.TODO(), model.SaleList{
				{Country: "France", Year: 2014, Sales: 100, Profit: 10, UnitsSold: 5},
				{Country: "France", Year: 2013, Sales: 50, Profit: 5, UnitsSold: 2},
				{Country: "Canada", Year: 2014, Sales: 70, Profit: 7, UnitsSold: 1},
			})
			Expect(err).To(BeNil())

			stats, err := store.Statistics(context.TODO())
			Expect(err).To(BeNil())
			Expect(stats.Records).To(Equal(int64(3)))
			Expect(stats.TotalSales).To(BeNumerically("~", 220, 1e-9))
			Expect(stats.SalesByCountry).To(HaveKeyWithValue("France", BeNumerically("~", 150, 1e-9)))
			Expect(stats.SalesByCountry).To(HaveKeyWithValue("Canada", BeNumerically("~", 70, 1e-9)))
		})

		AfterEach(func() {
			gormDB.Exec("DELETE FROM sales;")
		})
	})
})
