package cache

import "sync/atomic"

// Versions は一覧キャッシュの無効化用カウンタ。
// Ledgerが書き込みのたびにbumpし、読み手はタグを比較するだけ。
// キャッシュ自体は真実のソースではない（mutationの判断には使わない）。
type Versions struct {
	products  atomic.Int64
	movements atomic.Int64
}

func NewVersions() *Versions {
	return &Versions{}
}

func (v *Versions) Products() int64  { return v.products.Load() }
func (v *Versions) Movements() int64 { return v.movements.Load() }

func (v *Versions) BumpProducts() int64  { return v.products.Add(1) }
func (v *Versions) BumpMovements() int64 { return v.movements.Add(1) }

// Tagged は「どのバージョン時点で計算された値か」を持つ読み取り結果。
type Tagged[T any] struct {
	Items   T     `json:"items"`
	Version int64 `json:"version"`
}

func Tag[T any](items T, version int64) Tagged[T] {
	return Tagged[T]{Items: items, Version: version}
}
