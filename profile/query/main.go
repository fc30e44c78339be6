// Profiling:
// go build ./profile/query
// ./query -mode cpu
// go tool pprof -http=":8000" -nodefraction=0.001 ./query cpu.pprof

package main

import (
	"flag"

	"github.com/pkg/profile"

	"github.com/DangerosoDavo/sigecs"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

type comp3 struct {
	V int64
	W int64
}

func main() {
	mode := flag.String("mode", "cpu", "Profile to record: cpu or mem")
	rounds := flag.Int("rounds", 20, "Worlds to build")
	iters := flag.Int("iters", 200, "Queries per world")
	entities := flag.Int("entities", 100000, "Entities per world")
	flag.Parse()

	opt := profile.CPUProfile
	if *mode == "mem" {
		opt = profile.MemProfileAllocs
	}
	p := profile.Start(opt, profile.ProfilePath("."), profile.NoShutdownHook)
	run(*rounds, *iters, *entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		w := ecs.NewWorld()
		for i := range numEntities {
			e := w.CreateEntity()
			_ = ecs.AddComponent(w, e, comp1{V: int64(i)})
			_ = ecs.AddComponent(w, e, comp2{V: 1, W: 1})
			if i%2 == 0 {
				_ = ecs.AddComponent(w, e, comp3{})
			}
		}

		for range iters {
			for _, e := range ecs.Query2[comp1, comp2](w) {
				c1, _ := ecs.GetComponent[comp1](w, e)
				c2, _ := ecs.GetComponent[comp2](w, e)
				c1.V += c2.V
				c1.W += c2.W
			}
		}
	}
}
