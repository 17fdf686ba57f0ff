package usecase_test

import unitdto "github.com/fekuna/omnipos-stock-service/internal/unit/dto"

func registerInput(itemID string, serials ...string) *unitdto.RegisterUnitsInput {
	return &unitdto.RegisterUnitsInput{PurchaseOrderItemID: itemID, Serials: serials}
}
