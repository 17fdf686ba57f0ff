package stockv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const InventoryServiceName = "omnipos.stock.v1.InventoryService"

type StockMovement struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	MovementType   string    `json:"movement_type"`
	QuantityChange int64     `json:"quantity_change"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	ReferenceType  string    `json:"reference_type"`
	ReferenceID    string    `json:"reference_id"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListMovementsRequest struct {
	ProductID     string `json:"product_id"`
	MovementType  string `json:"movement_type"`
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
	Page          int32  `json:"page"`
	PageSize      int32  `json:"page_size"`
}

type ListMovementsResponse struct {
	Movements []*StockMovement `json:"movements"`
	Total     int32            `json:"total"`
}

type InventoryServiceServer interface {
	ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error)
}

var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: InventoryServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(InventoryServiceName, "ListMovements", InventoryServiceServer.ListMovements),
	},
	Metadata: "omnipos/stock/v1/inventory",
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

type InventoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryServiceClient(cc grpc.ClientConnInterface) *InventoryServiceClient {
	return &InventoryServiceClient{cc: cc}
}

func (c *InventoryServiceClient) ListMovements(ctx context.Context, in *ListMovementsRequest, opts ...grpc.CallOption) (*ListMovementsResponse, error) {
	return invoke[ListMovementsResponse](ctx, c.cc, InventoryServiceName, "ListMovements", in, opts...)
}
