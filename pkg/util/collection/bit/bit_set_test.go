// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package bit

import (
	"testing"
)

func Test_BitSet_01(t *testing.T) {
	checkBitSet(t, []uint{}, []uint{0, 1, 63, 64, 1000})
}

func Test_BitSet_02(t *testing.T) {
	checkBitSet(t, []uint{0}, []uint{1, 63, 64})
}

func Test_BitSet_03(t *testing.T) {
	checkBitSet(t, []uint{63, 64, 65}, []uint{0, 62, 66, 128})
}

func Test_BitSet_04(t *testing.T) {
	checkBitSet(t, []uint{1, 2, 3, 500}, []uint{0, 4, 499, 501})
}

func Test_BitSet_Remove_01(t *testing.T) {
	var set Set
	//
	set.InsertAll(1, 2, 3)
	set.Remove(2)
	// Removing an absent (out-of-range) value is a no-op.
	set.Remove(1000)
	//
	if set.Contains(2) || !set.Contains(1) || !set.Contains(3) {
		t.Errorf("unexpected contents after removal: %s", set.String())
	}
	//
	if set.Count() != 2 {
		t.Errorf("expected count 2, got %d", set.Count())
	}
}

func Test_BitSet_Clone_01(t *testing.T) {
	var set Set
	//
	set.InsertAll(5, 10)
	clone := set.Clone()
	clone.Insert(15)
	//
	if set.Contains(15) {
		t.Errorf("clone aliases original")
	}
}

func Test_BitSet_Iter_01(t *testing.T) {
	var (
		set      Set
		expected = []uint{0, 7, 64, 200}
		actual   []uint
	)
	//
	set.InsertAll(200, 7, 0, 64)
	set.Iter(func(val uint) {
		actual = append(actual, val)
	})
	//
	if len(actual) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
	//
	for i := range expected {
		if expected[i] != actual[i] {
			t.Errorf("expected %v, got %v", expected, actual)
		}
	}
}

func checkBitSet(t *testing.T, in []uint, out []uint) {
	t.Parallel()
	//
	var set Set
	//
	set.InsertAll(in...)
	//
	for _, v := range in {
		if !set.Contains(v) {
			t.Errorf("missing value %d", v)
		}
	}
	//
	for _, v := range out {
		if set.Contains(v) {
			t.Errorf("unexpected value %d", v)
		}
	}
	//
	if set.Count() != uint(len(in)) {
		t.Errorf("expected count %d, got %d", len(in), set.Count())
	}
	//
	if set.IsEmpty() != (len(in) == 0) {
		t.Errorf("unexpected emptiness")
	}
}
