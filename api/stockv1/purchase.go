package stockv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const PurchaseServiceName = "omnipos.stock.v1.PurchaseService"

type PurchaseOrderItem struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	Quantity     int64  `json:"quantity"`
	UnitCost     string `json:"unit_cost"`
	TotalPrice   string `json:"total_price"`
	Unregistered int64  `json:"unregistered"`
}

type PurchaseOrder struct {
	ID             string               `json:"id"`
	VendorID       string               `json:"vendor_id"`
	OrderDate      time.Time            `json:"order_date"`
	DeliveredDate  *time.Time           `json:"delivered_date,omitempty"`
	Status         string               `json:"status"`
	Subtotal       string               `json:"subtotal"`
	DiscountAmount string               `json:"discount_amount"`
	TaxAmount      string               `json:"tax_amount"`
	ShippingCost   string               `json:"shipping_cost"`
	GrandTotal     string               `json:"grand_total"`
	Items          []*PurchaseOrderItem `json:"items"`
}

type PurchaseItemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	UnitCost  string `json:"unit_cost"`
}

type CreatePurchaseOrderRequest struct {
	VendorID     string               `json:"vendor_id"`
	OrderDate    *time.Time           `json:"order_date,omitempty"`
	Items        []*PurchaseItemInput `json:"items"`
	DiscountIDs  []string             `json:"discount_ids"`
	TaxIDs       []string             `json:"tax_ids"`
	ShippingCost string               `json:"shipping_cost"`
}

type EditPurchaseOrderRequest struct {
	ID           string               `json:"id"`
	VendorID     string               `json:"vendor_id"`
	OrderDate    *time.Time           `json:"order_date,omitempty"`
	Items        []*PurchaseItemInput `json:"items"`
	DiscountIDs  []string             `json:"discount_ids"`
	TaxIDs       []string             `json:"tax_ids"`
	ShippingCost string               `json:"shipping_cost"`
}

type GetPurchaseOrderRequest struct {
	ID string `json:"id"`
}

type CancelPurchaseOrderRequest struct {
	ID string `json:"id"`
}

type DeliverPurchaseOrderRequest struct {
	ID            string     `json:"id"`
	DeliveredDate *time.Time `json:"delivered_date,omitempty"`
}

type PurchaseOrderResponse struct {
	PurchaseOrder *PurchaseOrder `json:"purchase_order"`
}

type PurchaseServiceServer interface {
	CreatePurchaseOrder(context.Context, *CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error)
	GetPurchaseOrder(context.Context, *GetPurchaseOrderRequest) (*PurchaseOrderResponse, error)
	EditPurchaseOrder(context.Context, *EditPurchaseOrderRequest) (*PurchaseOrderResponse, error)
	CancelPurchaseOrder(context.Context, *CancelPurchaseOrderRequest) (*emptypb.Empty, error)
	DeliverPurchaseOrder(context.Context, *DeliverPurchaseOrderRequest) (*PurchaseOrderResponse, error)
}

var PurchaseService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: PurchaseServiceName,
	HandlerType: (*PurchaseServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(PurchaseServiceName, "CreatePurchaseOrder", PurchaseServiceServer.CreatePurchaseOrder),
		unary(PurchaseServiceName, "GetPurchaseOrder", PurchaseServiceServer.GetPurchaseOrder),
		unary(PurchaseServiceName, "EditPurchaseOrder", PurchaseServiceServer.EditPurchaseOrder),
		unary(PurchaseServiceName, "CancelPurchaseOrder", PurchaseServiceServer.CancelPurchaseOrder),
		unary(PurchaseServiceName, "DeliverPurchaseOrder", PurchaseServiceServer.DeliverPurchaseOrder),
	},
	Metadata: "omnipos/stock/v1/purchase",
}

func RegisterPurchaseServiceServer(s grpc.ServiceRegistrar, srv PurchaseServiceServer) {
	s.RegisterService(&PurchaseService_ServiceDesc, srv)
}

type PurchaseServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewPurchaseServiceClient(cc grpc.ClientConnInterface) *PurchaseServiceClient {
	return &PurchaseServiceClient{cc: cc}
}

func (c *PurchaseServiceClient) CreatePurchaseOrder(ctx context.Context, in *CreatePurchaseOrderRequest, opts ...grpc.CallOption) (*PurchaseOrderResponse, error) {
	return invoke[PurchaseOrderResponse](ctx, c.cc, PurchaseServiceName, "CreatePurchaseOrder", in, opts...)
}

func (c *PurchaseServiceClient) GetPurchaseOrder(ctx context.Context, in *GetPurchaseOrderRequest, opts ...grpc.CallOption) (*PurchaseOrderResponse, error) {
	return invoke[PurchaseOrderResponse](ctx, c.cc, PurchaseServiceName, "GetPurchaseOrder", in, opts...)
}

func (c *PurchaseServiceClient) EditPurchaseOrder(ctx context.Context, in *EditPurchaseOrderRequest, opts ...grpc.CallOption) (*PurchaseOrderResponse, error) {
	return invoke[PurchaseOrderResponse](ctx, c.cc, PurchaseServiceName, "EditPurchaseOrder", in, opts...)
}

func (c *PurchaseServiceClient) CancelPurchaseOrder(ctx context.Context, in *CancelPurchaseOrderRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, PurchaseServiceName, "CancelPurchaseOrder", in, opts...)
}

func (c *PurchaseServiceClient) DeliverPurchaseOrder(ctx context.Context, in *DeliverPurchaseOrderRequest, opts ...grpc.CallOption) (*PurchaseOrderResponse, error) {
	return invoke[PurchaseOrderResponse](ctx, c.cc, PurchaseServiceName, "DeliverPurchaseOrder", in, opts...)
}
