package migrations_test

import (
	"os"
	"path"

	"github.com/kubev2v/profit-planner/internal/config"
	"github.com/kubev2v/profit-planner/internal/store"
	"github.com/kubev2v/profit-planner/pkg/migrations"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("migrations", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
	)

	BeforeAll(func() {
		cfg := config.NewDefault()
		cfg.Database.Name = "file:migrations?mode=memory&cache=shared"
		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
	})

	tableExists := func(name string) bool {
		var count int
		tx := gormdb.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
		Expect(tx.Error).To(BeNil())
		return count == 1
	}

	Context("store migrations", Ordered, func() {
		It("fails to migrate the db -- migration folder does not exists", func() {
			err := migrations.MigrateStore(gormdb, "sqlite3", "some folder")
			Expect(err).NotTo(BeNil())
		})

		It("fails to migrate the db -- unknown dialect", func() {
			err := migrations.MigrateStore(gormdb, "oracle", "")
			Expect(err).NotTo(BeNil())
		})

		It("successfully migrates the db from the embedded sql", func() {
			err := migrations.MigrateStore(gormdb, "sqlite3", "")
			Expect(err).To(BeNil())
			Expect(tableExists("sales")).To(BeTrue())

			version, err := migrations.Version(gormdb, "sqlite3")
			Expect(err).To(BeNil())
			Expect(version).To(BeNumerically(">", 0))
		})

		It("successfully migrates the db from a folder", func() {
			currentFolder, err := os.Getwd()
			Expect(err).To(BeNil())

			err = migrations.MigrateStore(gormdb, "sqlite3", path.Join(currentFolder, "sql", "sqlite3"))
			Expect(err).To(BeNil())
			Expect(tableExists("sales")).To(BeTrue())
		})

		AfterEach(func() {
			gormdb.Exec("DROP TABLE IF EXISTS sales;")
			gormdb.Exec("DROP TABLE IF EXISTS goose_db_version;")
		})
	})
})
