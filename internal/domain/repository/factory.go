package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Balances() BalanceRepository
	Histories() HistoryRepository
}
