package wallet

import "wealthcheck/internal/models"

type CreateRequest = models.CreateWalletRequest
