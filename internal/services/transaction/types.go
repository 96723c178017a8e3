package transaction

import "wealthcheck/internal/models"

type (
	CreateRequest = models.CreateTransactionRequest
	UpdateRequest = models.UpdateTransactionRequest
)

type Page struct {
	Items []models.Transaction `json:"items"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
