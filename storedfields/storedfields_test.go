package storedfields

import (
	"bytes"
	"testing"

	"github.com/gosegment/ltcore/store"
	"github.com/stretchr/testify/require"
)

func writeSegment(t *testing.T, docs [][]FieldEntry) (fdtBytes, fdxBytes []byte) {
	t.Helper()

	var fdtBuf, fdxBuf bytes.Buffer
	w, err := NewWriter(store.NewDataOutput(&fdtBuf), len(docs))
	require.NoError(t, err)

	for _, fields := range docs {
		require.NoError(t, w.StartDocument(len(fields)))
		for _, f := range fields {
			require.NoError(t, w.WriteField(f))
		}
		require.NoError(t, w.FinishDocument())
	}

	require.NoError(t, w.Finish(store.NewDataOutput(&fdxBuf)))

	return fdtBuf.Bytes(), fdxBuf.Bytes()
}

func TestWriteAndReadDocument(t *testing.T) {
	docs := [][]FieldEntry{
		{StringField(1, "alpha"), StringField(2, "one")},
		{StringField(1, "beta")},
		{StringField(1, "gamma"), StringField(2, "three")},
	}

	fdt, fdx := writeSegment(t, docs)

	r, err := OpenReader(fdt, fdx)
	require.NoError(t, err)
	require.Equal(t, 3, r.DocCount())

	for i, want := range docs {
		var got []FieldEntry
		err := r.Document(i, nil, func(f FieldEntry) error {
			got = append(got, f)
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestWriteAndReadDocument_AllTypes(t *testing.T) {
	docs := [][]FieldEntry{
		{
			StringField(1, "hello"),
			BinaryField(2, []byte{0x01, 0x02, 0x03}),
			Int32Field(3, 42),
			Int64Field(4, -9000000000),
			Float32Field(5, 3.5),
			Float64Field(6, 2.71828),
		},
	}

	fdt, fdx := writeSegment(t, docs)

	r, err := OpenReader(fdt, fdx)
	require.NoError(t, err)

	var got []FieldEntry
	require.NoError(t, r.Document(0, nil, func(f FieldEntry) error {
		got = append(got, f)
		return nil
	}))
	require.Equal(t, docs[0], got)
}

func TestDocument_SelectFields(t *testing.T) {
	docs := [][]FieldEntry{
		{StringField(1, "alpha"), StringField(2, "one"), StringField(3, "x")},
	}
	fdt, fdx := writeSegment(t, docs)

	r, err := OpenReader(fdt, fdx)
	require.NoError(t, err)

	var got []FieldEntry
	err = r.Document(0, map[uint32]bool{2: true}, func(f FieldEntry) error {
		got = append(got, f)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, uint32(2), got[0].FieldNumber)
}

func TestFinishDocument_MismatchIsFatal(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(store.NewDataOutput(&buf), 1)
	require.NoError(t, err)

	require.NoError(t, w.StartDocument(2))
	require.NoError(t, w.WriteField(StringField(1, "only one")))
	err = w.FinishDocument()
	require.Error(t, err)
}

func TestMerge_FullyLiveSegmentUsesRawCopy(t *testing.T) {
	docsA := [][]FieldEntry{
		{StringField(1, "a0")},
		{StringField(1, "a1")},
	}
	docsB := [][]FieldEntry{
		{StringField(1, "b0")},
	}

	fdtA, fdxA := writeSegment(t, docsA)
	fdtB, fdxB := writeSegment(t, docsB)

	readerA, err := OpenReader(fdtA, fdxA)
	require.NoError(t, err)
	readerB, err := OpenReader(fdtB, fdxB)
	require.NoError(t, err)

	var mergedFdt, mergedFdx bytes.Buffer
	writer, err := NewWriter(store.NewDataOutput(&mergedFdt), 3)
	require.NoError(t, err)

	err = Merge(writer, MergeState{
		Readers: []MergeReader{
			{Reader: readerA, Live: nil},
			{Reader: readerB, Live: nil},
		},
	})
	require.NoError(t, err)
	require.NoError(t, writer.Finish(store.NewDataOutput(&mergedFdx)))

	merged, err := OpenReader(mergedFdt.Bytes(), mergedFdx.Bytes())
	require.NoError(t, err)
	require.Equal(t, 3, merged.DocCount())

	wantValues := []string{"a0", "a1", "b0"}
	for i, want := range wantValues {
		var got string
		err := merged.Document(i, nil, func(f FieldEntry) error {
			got = f.StringValue
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

type fakeLive struct{ live map[int]bool }

func (f fakeLive) Get(i int) bool { return f.live[i] }

func TestMerge_WithDeletionsReencodesPerDocument(t *testing.T) {
	docs := [][]FieldEntry{
		{StringField(1, "keep0")},
		{StringField(1, "dropped")},
		{StringField(1, "keep2")},
	}
	fdt, fdx := writeSegment(t, docs)

	reader, err := OpenReader(fdt, fdx)
	require.NoError(t, err)

	var mergedFdt, mergedFdx bytes.Buffer
	writer, err := NewWriter(store.NewDataOutput(&mergedFdt), 2)
	require.NoError(t, err)

	err = Merge(writer, MergeState{
		Readers: []MergeReader{
			{Reader: reader, Live: fakeLive{live: map[int]bool{0: true, 2: true}}},
		},
	})
	require.NoError(t, err)
	require.NoError(t, writer.Finish(store.NewDataOutput(&mergedFdx)))

	merged, err := OpenReader(mergedFdt.Bytes(), mergedFdx.Bytes())
	require.NoError(t, err)
	require.Equal(t, 2, merged.DocCount())

	var v0, v1 string
	require.NoError(t, merged.Document(0, nil, func(f FieldEntry) error { v0 = f.StringValue; return nil }))
	require.NoError(t, merged.Document(1, nil, func(f FieldEntry) error { v1 = f.StringValue; return nil }))
	require.Equal(t, "keep0", v0)
	require.Equal(t, "keep2", v1)
}
