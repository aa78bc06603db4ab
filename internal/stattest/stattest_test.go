package stattest_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collatzrng/internal/generator"
	"github.com/san-kum/collatzrng/internal/rng"
	"github.com/san-kum/collatzrng/internal/stattest"
)

const tol = 1e-9

func alternating(n int) rng.Bits {
	b := make(rng.Bits, n)
	for i := range b {
		b[i] = uint8(i % 2)
	}
	return b
}

func constant(n int, v uint8) rng.Bits {
	b := make(rng.Bits, n)
	for i := range b {
		b[i] = v
	}
	return b
}

var _ = Describe("Frequency", func() {
	It("scores a perfectly balanced sequence as random", func() {
		r := stattest.Frequency(alternating(10000))
		Expect(r.Failed()).To(BeFalse())
		Expect(r.Ones).To(Equal(5000))
		Expect(r.Zeros).To(Equal(5000))
		Expect(r.ChiSquare).To(Equal(0.0))
		Expect(r.PValue).To(Equal(1.0))
		Expect(r.Random).To(BeTrue())
	})

	It("rejects a constant sequence", func() {
		r := stattest.Frequency(constant(100, 1))
		Expect(r.ChiSquare).To(BeNumerically("~", 100, tol))
		Expect(r.Random).To(BeFalse())
	})

	It("returns a soft error on empty input", func() {
		r := stattest.Frequency(rng.Bits{})
		Expect(r.Failed()).To(BeTrue())
		Expect(r.Passed()).To(BeFalse())
	})
})

var _ = Describe("Runs", func() {
	It("flags a strictly alternating sequence", func() {
		r := stattest.Runs(alternating(16))
		Expect(r.Runs).To(Equal(16))
		Expect(r.ExpectedRuns).To(BeNumerically("~", 9, tol))
		Expect(r.StdDev).To(BeNumerically("~", 1.9321835661585918, tol))
		Expect(r.ZScore).To(BeNumerically("~", 3.6228441865473595, tol))
		Expect(r.PValue).To(BeNumerically("~", 0.0002913813578468982, 1e-12))
		Expect(r.Random).To(BeFalse())
	})

	DescribeTable("soft errors",
		func(bits rng.Bits, msg string) {
			r := stattest.Runs(bits)
			Expect(r.Failed()).To(BeTrue())
			Expect(r.Err).To(Equal(msg))
		},
		Entry("single bit", rng.Bits{1}, "insufficient bits"),
		Entry("all ones", constant(64, 1), "all bits identical"),
		Entry("all zeros", constant(64, 0), "all bits identical"),
	)
})

var _ = Describe("BlockChiSquare", func() {
	It("rejects blocks that are all ones", func() {
		r := stattest.BlockChiSquare(constant(16, 1), 8)
		Expect(r.Blocks).To(Equal(2))
		Expect(r.DegreesOfFreedom).To(Equal(8))
		Expect(r.Observed).To(HaveLen(9))
		Expect(r.Observed[8]).To(Equal(2))
		Expect(r.ChiSquare).To(BeNumerically("~", 510, tol))
		Expect(r.PValue).To(BeNumerically("<", 1e-13))
		Expect(r.Random).To(BeFalse())
	})

	It("ignores trailing bits and defaults the block size", func() {
		r := stattest.BlockChiSquare(alternating(21), 0)
		Expect(r.BlockSize).To(Equal(stattest.DefaultBlockSize))
		Expect(r.Blocks).To(Equal(2))
		Expect(r.Observed[4]).To(Equal(2))
	})

	It("returns a soft error with fewer bits than one block", func() {
		r := stattest.BlockChiSquare(alternating(7), 8)
		Expect(r.Failed()).To(BeTrue())
	})
})

var _ = Describe("Serial", func() {
	It("counts overlapping pairs", func() {
		r := stattest.Serial(rng.ParseBits("001101"))
		Expect(r.Pairs).To(Equal(5))
		Expect(r.Counts).To(Equal([4]int{1, 2, 1, 1}))
		Expect(r.Expected).To(BeNumerically("~", 1.25, tol))
		Expect(r.ChiSquare).To(BeNumerically("~", 0.6, tol))
		Expect(r.PValue).To(BeNumerically("~", 0.9004312924106846, tol))
		Expect(r.Random).To(BeTrue())
	})

	It("returns a soft error on a single bit", func() {
		Expect(stattest.Serial(rng.Bits{0}).Failed()).To(BeTrue())
	})
})

var _ = Describe("ChiSquarePValue", func() {
	DescribeTable("matches the series approximation",
		func(chi float64, df int, want float64) {
			Expect(stattest.ChiSquarePValue(chi, df)).To(BeNumerically("~", want, tol))
		},
		Entry("zero statistic", 0.0, 3, 1.0),
		Entry("negative statistic", -1.0, 3, 1.0),
		Entry("series branch df 3", 5.0, 3, 0.4345982085070782),
		Entry("series branch df 8", 0.5, 8, 0.9998715891324067),
		Entry("tail branch df 8", 20.0, 8, 0.2865047968601901),
		Entry("series may undershoot zero", 1.5, 1, -0.09705830774305335),
		Entry("tail branch zero df", 3.0, 0, 0.0),
		Entry("series branch zero df is neutral", 1.5, 0, 0.5),
	)
})

var _ = Describe("NormalCDF", func() {
	It("is symmetric around zero", func() {
		Expect(stattest.NormalCDF(0)).To(BeNumerically("~", 0.5, tol))
		Expect(stattest.NormalCDF(1.96) + stattest.NormalCDF(-1.96)).To(BeNumerically("~", 1, tol))
		Expect(stattest.NormalCDF(1.96)).To(BeNumerically("~", 0.975, 1e-3))
	})
})

var _ = Describe("Scorecard", func() {
	DescribeTable("grades pass counts",
		func(passed int, want stattest.Verdict) {
			Expect(stattest.Grade(passed)).To(Equal(want))
		},
		Entry("all", 4, stattest.VerdictSuccess),
		Entry("three", 3, stattest.VerdictSuccess),
		Entry("two", 2, stattest.VerdictPartial),
		Entry("one", 1, stattest.VerdictFailure),
		Entry("none", 0, stattest.VerdictFailure),
	)

	It("counts soft errors as failures", func() {
		r := stattest.RunAll(rng.Bits{1})
		Expect(r.Frequency.Failed()).To(BeFalse())
		Expect(r.Runs.Failed()).To(BeTrue())
		Expect(r.BlockChiSquare.Failed()).To(BeTrue())
		Expect(r.Serial.Failed()).To(BeTrue())
		Expect(r.Scorecard.Total).To(Equal(4))
		Expect(r.Scorecard.Passed).To(BeNumerically("<=", 1))
		Expect(r.Scorecard.Verdict).To(Equal(stattest.VerdictFailure))
	})
})

var _ = Describe("RunAll on generator output", func() {
	var bits rng.Bits

	BeforeEach(func() {
		g, err := generator.New(12345)
		Expect(err).NotTo(HaveOccurred())
		bits, err = g.BalancedBits(10000)
		Expect(err).NotTo(HaveOccurred())
	})

	It("reproduces the reference battery for seed 12345", func() {
		r := stattest.RunAll(bits)

		Expect(r.Frequency.Ones).To(Equal(4975))
		Expect(r.Frequency.ChiSquare).To(BeNumerically("~", 0.25, tol))
		Expect(r.Frequency.PValue).To(BeNumerically("~", 0.8824969025845955, tol))

		Expect(r.Runs.Runs).To(Equal(5029))
		Expect(r.Runs.ExpectedRuns).To(BeNumerically("~", 5000.875, tol))
		Expect(r.Runs.PValue).To(BeNumerically("~", 0.5737466635533557, 1e-9))

		Expect(r.BlockChiSquare.Blocks).To(Equal(1250))
		Expect(r.BlockChiSquare.ChiSquare).To(BeNumerically("~", 1.7632, 1e-9))
		Expect(r.BlockChiSquare.PValue).To(BeNumerically("~", 0.9890402963639406, 1e-9))

		Expect(r.Serial.Counts).To(Equal([4]int{2511, 2514, 2514, 2460}))
		Expect(r.Serial.PValue).To(BeNumerically("~", 0.8472776315572094, 1e-9))

		Expect(r.Scorecard).To(Equal(stattest.Scorecard{
			Passed: 4, Total: 4, Ratio: 1, Verdict: stattest.VerdictSuccess,
		}))
	})

	It("lists results in battery order", func() {
		kinds := make([]string, 0, 4)
		for _, res := range stattest.RunAll(bits).Results() {
			kinds = append(kinds, string(res.Summary().Kind))
		}
		Expect(strings.Join(kinds, ",")).To(Equal("frequency,runs,block_chi_square,serial"))
	})
})
