package repository

import "context"

// トランザクション内で使うrepo
type TxRepos interface {
	Users() UserRepository
	Sellers() SellerRepository
	Products() ProductRepository
	Addresses() AddressRepository
	LineItems() LineItemRepository
	Orders() OrderRepository
	AuditLogs() AuditLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
