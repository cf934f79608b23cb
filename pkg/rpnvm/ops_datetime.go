// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rpnvm

import (
	"time"

	"github.com/xapiens/RVPF-sub009/pkg/temporal"
	"github.com/xapiens/RVPF-sub009/pkg/value"
)

func popDateTime(vm *VM) (temporal.Timestamp, error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return 0, err
	}
	dt, ok := v.DateTime()
	if !ok {
		return 0, fail(TypeMismatch, -1, "expected datetime")
	}
	return dt, nil
}

func calendarPart(extract func(t time.Time) int64) OperationFunc {
	return func(vm *VM) error {
		dt, err := popDateTime(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Long(extract(dt.AsTime().In(vm.Zone))))
		return nil
	}
}

func init() {
	RegisterOperation("year", calendarPart(func(t time.Time) int64 { return int64(t.Year()) }))
	RegisterOperation("month", calendarPart(func(t time.Time) int64 { return int64(t.Month()) }))
	RegisterOperation("day", calendarPart(func(t time.Time) int64 { return int64(t.Day()) }))
	RegisterOperation("hour", calendarPart(func(t time.Time) int64 { return int64(t.Hour()) }))
	RegisterOperation("minute", calendarPart(func(t time.Time) int64 { return int64(t.Minute()) }))
	RegisterOperation("second", calendarPart(func(t time.Time) int64 { return int64(t.Second()) }))
	RegisterOperation("dow", calendarPart(func(t time.Time) int64 { return int64(t.Weekday()) }))
	RegisterOperation("dim", calendarPart(func(t time.Time) int64 {
		return int64(time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day())
	}))

	RegisterOperation("raw", func(vm *VM) error {
		dt, err := popDateTime(vm)
		if err != nil {
			return err
		}
		vm.Stack.Push(value.Long(int64(dt)))
		return nil
	})

	RegisterOperation("split", func(vm *VM) error {
		// Complex.split and DateTime.split share the name; dispatch on the
		// popped value's kind.
		v, err := vm.Stack.Pop()
		if err != nil {
			return err
		}
		if c, ok := v.Complex(); ok {
			a, b := c.Split()
			vm.Stack.Push(value.Double(a))
			vm.Stack.Push(value.Double(b))
			return nil
		}
		dt, ok := v.DateTime()
		if !ok {
			return fail(TypeMismatch, -1, "split expects complex or datetime")
		}
		lt := dt.AsTime().In(vm.Zone)
		vm.Stack.Push(value.Long(int64(lt.Year())))
		vm.Stack.Push(value.Long(int64(lt.Month())))
		vm.Stack.Push(value.Long(int64(lt.Day())))
		vm.Stack.Push(value.Long(int64(lt.Hour())))
		vm.Stack.Push(value.Long(int64(lt.Minute())))
		vm.Stack.Push(value.Long(int64(lt.Second())))
		return nil
	})

	RegisterOperation("join", func(vm *VM) error {
		parts, err := vm.Stack.PopN(6)
		if err != nil {
			return err
		}
		get := func(i int) int {
			l, _ := parts[i].Long()
			return int(l)
		}
		lt := time.Date(get(0), time.Month(get(1)), get(2), get(3), get(4), get(5), 0, vm.Zone)
		vm.Stack.Push(value.DateTime(temporal.FromTime(lt)))
		return nil
	})

	RegisterOperation("tz", func(vm *VM) error {
		name, err := popString(vm)
		if err != nil {
			return err
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return fail(TypeMismatch, -1, "unknown zone "+name)
		}
		vm.Zone = loc
		return nil
	})

	RegisterOperation("mjd", func(vm *VM) error {
		dt, err := popDateTime(vm)
		if err != nil {
			return err
		}
		// Modified Julian Date epoch is 1858-11-17T00:00:00Z.
		mjdEpoch := time.Date(1858, 11, 17, 0, 0, 0, 0, time.UTC)
		days := dt.AsTime().Sub(mjdEpoch).Hours() / 24
		vm.Stack.Push(value.Double(days))
		return nil
	})
}
