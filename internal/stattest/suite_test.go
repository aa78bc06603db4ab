package stattest_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStattest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Stattest Suite")
}
