package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPagination_OutOfRange(t *testing.T) {
	p := Pagination{CurrentPage: 3, TotalPages: 3, TotalElements: 25, Size: 10}
	require.True(t, p.OutOfRange())
	require.Equal(t, 2, p.LastPage())

	p.CurrentPage = 2
	require.False(t, p.OutOfRange())

	empty := Pagination{CurrentPage: 4}
	require.True(t, empty.Empty())
	require.False(t, empty.OutOfRange())
	require.Equal(t, 0, empty.LastPage())
}

func TestPagination_PrevNext(t *testing.T) {
	p := Pagination{CurrentPage: 0, TotalPages: 2, TotalElements: 12, Size: 10, First: true}
	require.False(t, p.HasPrev())
	require.True(t, p.HasNext())

	p = Pagination{CurrentPage: 1, TotalPages: 2, TotalElements: 12, Size: 10, Last: true}
	require.True(t, p.HasPrev())
	require.False(t, p.HasNext())
}

func TestPagination_Window(t *testing.T) {
	p := Pagination{CurrentPage: 5, TotalPages: 10}
	require.Equal(t, []int{3, 4, 5, 6, 7}, p.Window(5))

	p.CurrentPage = 0
	require.Equal(t, []int{0, 1, 2, 3, 4}, p.Window(5))

	p.CurrentPage = 9
	require.Equal(t, []int{5, 6, 7, 8, 9}, p.Window(5))

	p = Pagination{CurrentPage: 0, TotalPages: 2}
	require.Equal(t, []int{0, 1}, p.Window(5))

	require.Nil(t, Pagination{}.Window(5))
}

func TestRequest_Normalize(t *testing.T) {
	r := Request{Page: -2}.Normalize()
	require.Equal(t, 0, r.Page)
	require.Equal(t, DefaultSize, r.Size)

	r = Request{Page: 3, Size: 25}.Normalize()
	require.Equal(t, Request{Page: 3, Size: 25}, r)
}
