package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vango-dev/reactor/reactor"
)

func demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run through the core scenarios the engine is built to handle",
		Long:  `demo walks through batching, laziness, branch switching, error capture, and cycle detection, printing what happens at each step.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner()
			fmt.Println()

			scenarios := []struct {
				name string
				run  func()
			}{
				{"batch coalescing", demoBatchCoalescing},
				{"lazy derived without subscribers", demoLazyDerived},
				{"branch switch drops the abandoned edge", demoBranchSwitch},
				{"formula error capture", demoFormulaError},
				{"cycle guard on a feedback loop", demoCycleGuard},
				{"self-read cycle is fatal", demoSelfReadCycle},
			}

			for i, s := range scenarios {
				info("scenario %d: %s", i+1, s.name)
				s.run()
				fmt.Println()
			}

			success("demo complete")
			return nil
		},
	}
}

func demoBatchCoalescing() {
	a := reactor.NewSource(1)
	b := reactor.NewSource(2)
	runs := 0

	dispose := reactor.CreateEffect(func() {
		runs++
		info("  effect saw a=%d b=%d (run #%d)", a.Get(), b.Get(), runs)
	})
	defer dispose()

	reactor.Batch(func() {
		a.Set(10)
		b.Set(20)
	})
	info("  after batched writes to both sources: %d total runs", runs)
}

func demoLazyDerived() {
	a := reactor.NewSource(5)
	recomputes := 0
	doubled := reactor.NewDerived(func() int {
		recomputes++
		return a.Get() * 2
	})

	a.Set(6)
	a.Set(7)
	info("  wrote to a twice with no subscriber on doubled: %d recomputes so far", recomputes)
	info("  doubled.Get() = %d", doubled.Get())
	info("  after one pull: %d recomputes", recomputes)
}

func demoBranchSwitch() {
	cond := reactor.NewSource(true)
	a := reactor.NewSource(1)
	b := reactor.NewSource(2)

	picked := reactor.NewDerived(func() int {
		if cond.Get() {
			return a.Get()
		}
		return b.Get()
	})

	runs := 0
	dispose := picked.Subscribe(func(int) { runs++ })
	defer dispose()
	runs = 0

	cond.Set(false)
	info("  switched branch to b: %d effect runs", runs)

	a.Set(999)
	info("  wrote to abandoned branch a: %d effect runs (edge was dropped)", runs)
}

func demoFormulaError() {
	shouldFail := reactor.NewSource(true)
	risky := reactor.NewDerived(func() int {
		if shouldFail.Get() {
			panic("computation failed")
		}
		return 42
	})

	func() {
		defer func() {
			if r := recover(); r != nil {
				info("  risky.Get() panicked as expected: %v", r)
			}
		}()
		risky.Get()
	}()

	shouldFail.Set(false)
	info("  risky.Get() after clearing the failure = %d", risky.Get())
}

func demoCycleGuard() {
	prev := reactor.CycleGuardLimit
	reactor.CycleGuardLimit = 5
	defer func() { reactor.CycleGuardLimit = prev }()

	a := reactor.NewSource(0)
	defer func() {
		if r := recover(); r != nil {
			info("  feedback loop tripped the cycle guard: %v", r)
		}
	}()

	dispose := reactor.CreateEffect(func() {
		a.Set(a.Get() + 1)
	})
	defer dispose()
}

func demoSelfReadCycle() {
	var self *reactor.Derived[int]
	self = reactor.NewDerived(func() int {
		return self.Get() + 1
	})

	defer func() {
		if r := recover(); r != nil {
			info("  reading a self-referential derived panicked: %v", r)
		}
	}()
	self.Get()
}
