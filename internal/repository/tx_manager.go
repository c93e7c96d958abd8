package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Products() ProductRepository
	Movements() MovementRepository
	Parties() PartyRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// 在庫更新と移動レコードの記録は必ず同じTxで行う。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
