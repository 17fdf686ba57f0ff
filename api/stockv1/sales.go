package stockv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const SalesServiceName = "omnipos.stock.v1.SalesService"

type SalesOrderItem struct {
	ID         string         `json:"id"`
	ProductID  string         `json:"product_id"`
	Quantity   int64          `json:"quantity"`
	Price      string         `json:"price"`
	TotalPrice string         `json:"total_price"`
	Units      []*ProductUnit `json:"units"`
}

type SalesOrder struct {
	ID             string            `json:"id"`
	CustomerID     string            `json:"customer_id"`
	OrderDate      time.Time         `json:"order_date"`
	ShipmentDate   *time.Time        `json:"shipment_date,omitempty"`
	Subtotal       string            `json:"subtotal"`
	DiscountAmount string            `json:"discount_amount"`
	TaxAmount      string            `json:"tax_amount"`
	ShippingCost   string            `json:"shipping_cost"`
	GrandTotal     string            `json:"grand_total"`
	Items          []*SalesOrderItem `json:"items"`
}

type SalesLineInput struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	// Price overrides the catalog price when not empty.
	Price string `json:"price,omitempty"`
}

type CreateSalesOrderRequest struct {
	CustomerID   string            `json:"customer_id"`
	OrderDate    *time.Time        `json:"order_date,omitempty"`
	ShipmentDate *time.Time        `json:"shipment_date,omitempty"`
	Lines        []*SalesLineInput `json:"lines"`
	DiscountIDs  []string          `json:"discount_ids"`
	TaxIDs       []string          `json:"tax_ids"`
	ShippingCost string            `json:"shipping_cost"`
}

type GetSalesOrderRequest struct {
	ID string `json:"id"`
}

type SalesOrderResponse struct {
	SalesOrder *SalesOrder `json:"sales_order"`
}

type QuoteResponse struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	TaxAmount      string `json:"tax_amount"`
	ShippingCost   string `json:"shipping_cost"`
	GrandTotal     string `json:"grand_total"`
}

type SalesServiceServer interface {
	CreateSalesOrder(context.Context, *CreateSalesOrderRequest) (*SalesOrderResponse, error)
	GetSalesOrder(context.Context, *GetSalesOrderRequest) (*SalesOrderResponse, error)
	QuoteSalesOrder(context.Context, *CreateSalesOrderRequest) (*QuoteResponse, error)
}

var SalesService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SalesServiceName,
	HandlerType: (*SalesServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(SalesServiceName, "CreateSalesOrder", SalesServiceServer.CreateSalesOrder),
		unary(SalesServiceName, "GetSalesOrder", SalesServiceServer.GetSalesOrder),
		unary(SalesServiceName, "QuoteSalesOrder", SalesServiceServer.QuoteSalesOrder),
	},
	Metadata: "omnipos/stock/v1/sales",
}

func RegisterSalesServiceServer(s grpc.ServiceRegistrar, srv SalesServiceServer) {
	s.RegisterService(&SalesService_ServiceDesc, srv)
}

type SalesServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSalesServiceClient(cc grpc.ClientConnInterface) *SalesServiceClient {
	return &SalesServiceClient{cc: cc}
}

func (c *SalesServiceClient) CreateSalesOrder(ctx context.Context, in *CreateSalesOrderRequest, opts ...grpc.CallOption) (*SalesOrderResponse, error) {
	return invoke[SalesOrderResponse](ctx, c.cc, SalesServiceName, "CreateSalesOrder", in, opts...)
}

func (c *SalesServiceClient) GetSalesOrder(ctx context.Context, in *GetSalesOrderRequest, opts ...grpc.CallOption) (*SalesOrderResponse, error) {
	return invoke[SalesOrderResponse](ctx, c.cc, SalesServiceName, "GetSalesOrder", in, opts...)
}

func (c *SalesServiceClient) QuoteSalesOrder(ctx context.Context, in *CreateSalesOrderRequest, opts ...grpc.CallOption) (*QuoteResponse, error) {
	return invoke[QuoteResponse](ctx, c.cc, SalesServiceName, "QuoteSalesOrder", in, opts...)
}
