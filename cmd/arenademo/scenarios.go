package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	arena "github.com/pavanmanishd/fixedarena"
	"github.com/pavanmanishd/fixedarena/promarena"
)

// newArena builds an arena of the given capacity from the config.
func (a *app) newArena(capacity int, extra ...arena.Option) (*arena.Arena, func(), error) {
	opts, cleanup, err := a.cfg.Options(a.logger)
	if err != nil {
		return nil, nil, err
	}
	ar, err := arena.New(capacity, append(opts, extra...)...)
	if err != nil {
		cleanup()
		return nil, nil, errors.Wrap(err, "create arena")
	}
	return ar, func() {
		ar.Release()
		cleanup()
	}, nil
}

func (a *app) runHello(w io.Writer) error {
	ar, done, err := a.newArena(a.cfg.Capacity)
	if err != nil {
		return err
	}
	defer done()

	first := arena.AllocString(ar, "Hello ")
	second := arena.AllocString(ar, "world!")
	if first == "" || second == "" {
		return errors.Wrapf(arena.ErrOutOfSpace, "capacity %d", ar.Capacity())
	}
	fmt.Fprintf(w, "%s%s\n", first, second)
	fmt.Fprintf(w, "used=%d\n", ar.Used())

	// Two allocations, one reset.
	ar.Reset()

	label := arena.AllocString(ar, "Numbers 1-3:")
	nums := arena.AllocSlice[int32](ar, 3)
	if label == "" || nums == nil {
		return errors.Wrapf(arena.ErrOutOfSpace, "capacity %d", ar.Capacity())
	}
	copy(nums, []int32{1, 2, 3})
	fmt.Fprintln(w, label)
	for _, n := range nums {
		fmt.Fprintln(w, n)
	}
	fmt.Fprintf(w, "used=%d peak=%d\n", ar.Used(), ar.Peak())
	return nil
}

func (a *app) runAligned(w io.Writer) error {
	ar, done, err := a.newArena(a.cfg.Capacity)
	if err != nil {
		return err
	}
	defer done()

	for i := 0; i < 3; i++ {
		if ar.AllocAligned(10, 4) == nil {
			return errors.Wrapf(arena.ErrOutOfSpace, "allocation %d", i)
		}
		fmt.Fprintf(w, "used=%d\n", ar.Used())
	}
	return nil
}

func (a *app) runTrack(w io.Writer) error {
	ar, done, err := a.newArena(a.cfg.Capacity, arena.WithTracking())
	if err != nil {
		return err
	}
	defer done()

	x := ar.Alloc(5)
	y := ar.Alloc(25)
	for name, p := range map[string][]byte{"x": x, "y": y} {
		rec, ok := ar.Lookup(p)
		if !ok {
			return errors.Errorf("no record for %s", name)
		}
		a.logger.Debug("lookup", "name", name, "offset", rec.Offset, "length", rec.Length)
	}
	for i, rec := range ar.Allocations() {
		fmt.Fprintf(w, "#%d offset=%d length=%d\n", i, rec.Offset, rec.Length)
	}
	if len(y) > 1 {
		_, found := ar.Lookup(y[1:])
		fmt.Fprintf(w, "mid-allocation lookup found=%t\n", found)
	}
	return nil
}

func (a *app) runCopy(w io.Writer) error {
	src, doneSrc, err := a.newArena(a.cfg.Capacity)
	if err != nil {
		return err
	}
	defer doneSrc()
	dst, doneDst, err := a.newArena(max(a.cfg.Capacity/2, 1))
	if err != nil {
		return err
	}
	defer doneDst()

	for i := 0; ; i++ {
		b := src.Alloc(8)
		if b == nil {
			break
		}
		binary.LittleEndian.PutUint64(b, uint64(i))
	}

	n := arena.Copy(dst, src)
	fmt.Fprintf(w, "src used=%d digest=%016x\n", src.Used(), src.Digest())
	fmt.Fprintf(w, "dst used=%d digest=%016x copied=%d\n", dst.Used(), dst.Digest(), n)
	return nil
}

func (a *app) runServeSim(w io.Writer) error {
	opts, cleanup, err := a.cfg.Options(a.logger)
	if err != nil {
		return err
	}
	defer cleanup()

	pool, err := arena.NewPool(a.cfg.Capacity, opts...)
	if err != nil {
		return errors.Wrap(err, "create pool")
	}
	defer pool.Close()

	workers, err := ants.NewPool(a.cfg.Workers, ants.WithPanicHandler(func(v any) {
		a.logger.Error("request handler panic", "panic", v)
	}))
	if err != nil {
		return errors.Wrap(err, "create worker pool")
	}
	defer workers.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures int
	)
	for i := 0; i < a.cfg.Requests; i++ {
		wg.Add(1)
		id := i
		if err := workers.Submit(func() {
			defer wg.Done()
			if err := handleRequest(pool, id); err != nil {
				a.logger.Warn("request failed", "id", id, "error", err)
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			return errors.Wrap(err, "submit request")
		}
	}
	wg.Wait()

	reg := prometheus.NewRegistry()
	if err := reg.Register(promarena.NewPoolCollector("arenademo", pool)); err != nil {
		return errors.Wrap(err, "register collector")
	}
	mfs, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			v := m.GetGauge().GetValue() + m.GetCounter().GetValue()
			fmt.Fprintf(w, "%s %g\n", mf.GetName(), v)
		}
	}
	fmt.Fprintf(w, "requests=%d failures=%d\n", a.cfg.Requests, failures)
	return nil
}

// handleRequest simulates one request that builds a response header and a
// small body entirely inside a pooled arena.
func handleRequest(pool *arena.Pool, id int) error {
	ar, err := pool.Get()
	if err != nil {
		return err
	}
	defer pool.Put(ar)

	header := arena.AllocString(ar, fmt.Sprintf("request-%d", id))
	body := arena.AllocSliceZeroed[uint32](ar, 16)
	if header == "" || body == nil {
		return errors.Wrapf(arena.ErrOutOfSpace, "request %d", id)
	}
	for i := range body {
		body[i] = uint32(id * i)
	}
	return nil
}
