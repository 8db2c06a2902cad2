package packed

import (
	"bytes"
	"testing"

	"github.com/gosegment/ltcore/store"
	"github.com/stretchr/testify/require"
)

func TestBitsRequired(t *testing.T) {
	cases := []struct {
		value uint64
		want  int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{255, 8},
		{256, 9},
		{^uint64(0), 64},
	}

	for _, c := range cases {
		require.Equal(t, c.want, BitsRequired(c.value))
	}
}

func TestNew_SelectsDirectLayouts(t *testing.T) {
	t.Run("8 bits", func(t *testing.T) {
		m, err := New(10, 8)
		require.NoError(t, err)
		_, ok := m.(*Direct8)
		require.True(t, ok)
	})

	t.Run("16 bits", func(t *testing.T) {
		m, err := New(10, 16)
		require.NoError(t, err)
		_, ok := m.(*Direct16)
		require.True(t, ok)
	})

	t.Run("odd width uses Packed64", func(t *testing.T) {
		m, err := New(10, 5)
		require.NoError(t, err)
		_, ok := m.(*Packed64)
		require.True(t, ok)
	})

	t.Run("width out of range", func(t *testing.T) {
		_, err := New(10, 65)
		require.Error(t, err)
	})
}

func TestPacked64_GetSetRoundTrip(t *testing.T) {
	for _, bpv := range []int{1, 3, 5, 7, 9, 17, 31, 37, 63} {
		bpv := bpv
		t.Run("", func(t *testing.T) {
			p := NewPacked64(200, bpv)
			maxVal := uint64(1)<<uint(bpv) - 1

			for i := 0; i < p.Size(); i++ {
				v := uint64(i) & maxVal
				p.Set(i, v)
			}
			for i := 0; i < p.Size(); i++ {
				require.Equal(t, uint64(i)&maxVal, p.Get(i), "bpv=%d index=%d", bpv, i)
			}
		})
	}
}

func TestPacked64_Fill(t *testing.T) {
	p := NewPacked64(20, 6)
	p.Fill(5, 15, 42)

	for i := 0; i < 20; i++ {
		if i >= 5 && i < 15 {
			require.Equal(t, uint64(42), p.Get(i))
		} else {
			require.Equal(t, uint64(0), p.Get(i))
		}
	}
}

func TestGrowable_WidensOnDemand(t *testing.T) {
	g := NewGrowable(10, 1)
	require.Equal(t, 1, g.BitsPerValue())

	g.Set(0, 1000)
	require.GreaterOrEqual(t, g.BitsPerValue(), BitsRequired(1000))
	require.Equal(t, uint64(1000), g.Get(0))

	g.Set(1, 5)
	require.Equal(t, uint64(5), g.Get(1))
}

func TestGrowable_EnsureCapacity(t *testing.T) {
	g := NewGrowable(5, 1)
	g.EnsureCapacity(1 << 20)
	require.GreaterOrEqual(t, g.BitsPerValue(), 21)

	g.Set(0, 1<<20)
	require.Equal(t, uint64(1<<20), g.Get(0))
}

func TestPaged_SpansMultiplePages(t *testing.T) {
	p, err := NewPaged(250, 10, 100)
	require.NoError(t, err)
	require.Equal(t, 3, p.PageCount())

	for i := 0; i < 250; i++ {
		p.Set(i, uint64(i%1000))
	}
	for i := 0; i < 250; i++ {
		require.Equal(t, uint64(i%1000), p.Get(i))
	}
}

func TestPacked64_BulkGetBulkSet(t *testing.T) {
	p := NewPacked64(5, 5)
	values := []uint64{0, 31, 5, 17, 0}
	for i, v := range values {
		p.Set(i, v)
	}

	got := make([]uint64, 5)
	n := p.BulkGet(0, got)
	require.Equal(t, 5, n)
	require.Equal(t, values, got)

	in := []uint64{1, 2, 3}
	n = p.BulkSet(1, in)
	require.Equal(t, 3, n)
	require.Equal(t, uint64(0), p.Get(0))
	require.Equal(t, uint64(1), p.Get(1))
	require.Equal(t, uint64(2), p.Get(2))
	require.Equal(t, uint64(3), p.Get(3))
	require.Equal(t, uint64(0), p.Get(4))
}

func TestMutable_BulkGet_ClampsAtEnd(t *testing.T) {
	p := NewPacked64(5, 5)
	buf := make([]uint64, 10)
	n := p.BulkGet(3, buf)
	require.Equal(t, 2, n)
}

func TestMutable_Resize(t *testing.T) {
	p := NewPacked64(5, 5)
	for i := 0; i < 5; i++ {
		p.Set(i, uint64(i+1))
	}

	grown := p.Resize(8)
	require.Equal(t, 8, grown.Size())
	for i := 0; i < 5; i++ {
		require.Equal(t, uint64(i+1), grown.Get(i))
	}
	for i := 5; i < 8; i++ {
		require.Equal(t, uint64(0), grown.Get(i))
	}

	shrunk := p.Resize(3)
	require.Equal(t, 3, shrunk.Size())
	for i := 0; i < 3; i++ {
		require.Equal(t, uint64(i+1), shrunk.Get(i))
	}
}

func TestWriteToReadFrom_RoundTrip(t *testing.T) {
	p := NewPacked64(64, 11)
	for i := 0; i < p.Size(); i++ {
		p.Set(i, uint64(i*7)%(1<<11))
	}

	var buf bytes.Buffer
	out := store.NewDataOutput(&buf)
	require.NoError(t, WriteTo(out, p))

	in := store.NewDataInput(buf.Bytes())
	got, err := ReadFrom(in)
	require.NoError(t, err)
	require.Equal(t, p.Size(), got.Size())
	require.Equal(t, p.BitsPerValue(), got.BitsPerValue())

	for i := 0; i < p.Size(); i++ {
		require.Equal(t, p.Get(i), got.Get(i))
	}

	require.NoError(t, store.VerifyChecksum(buf.Bytes()))
}
