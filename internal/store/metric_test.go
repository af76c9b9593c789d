package store

import (
	"database/sql/driver"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ = Describe("metric interceptor", func() {
	It("labels statements by their leading keyword", func() {
		Expect(statementKeyword("  SELECT * FROM sales", "query")).To(Equal("select"))
		Expect(statementKeyword("insert into sales values (?)", "exec")).To(Equal("insert"))
		Expect(statementKeyword("", "commit")).To(Equal("commit"))
	})

	It("counts failed operations but not skipped ones", func() {
		before := testutil.ToFloat64(dbOpErrors.WithLabelValues("exec"))

		observe("exec", "delete from sales", time.Now(), driver.ErrSkip)
		Expect(testutil.ToFloat64(dbOpErrors.WithLabelValues("exec"))).To(Equal(before))

		observe("exec", "delete from sales", time.Now(), errors.New("disk I/O error"))
		Expect(testutil.ToFloat64(dbOpErrors.WithLabelValues("exec"))).To(Equal(before + 1))
	})
})
