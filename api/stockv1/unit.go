package stockv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const UnitServiceName = "omnipos.stock.v1.UnitService"

type ProductUnit struct {
	ID                  string     `json:"id"`
	ProductID           string     `json:"product_id"`
	PurchaseOrderItemID string     `json:"purchase_order_item_id"`
	SalesOrderItemID    string     `json:"sales_order_item_id,omitempty"`
	SerialNumber        string     `json:"serial_number"`
	DateOfPurchase      time.Time  `json:"date_of_purchase"`
	DateOfSale          *time.Time `json:"date_of_sale,omitempty"`
	IsSold              bool       `json:"is_sold"`
	WarrantyID          string     `json:"warranty_id,omitempty"`
}

type RegisterProductUnitsRequest struct {
	PurchaseOrderItemID string   `json:"purchase_order_item_id"`
	SerialNumbers       []string `json:"serial_numbers"`
}

type UnitsResponse struct {
	Units []*ProductUnit `json:"units"`
}

type GetUnregisteredQuantityRequest struct {
	PurchaseOrderItemID string `json:"purchase_order_item_id"`
}

type ListUnitsRequest struct {
	PurchaseOrderItemID string `json:"purchase_order_item_id"`
}

type GetUnitSummaryRequest struct {
	ProductID string `json:"product_id"`
}

type UnitSummary struct {
	ProductID     string `json:"product_id"`
	StockQuantity int64  `json:"stock_quantity"`
	Registered    int64  `json:"registered"`
	Unsold        int64  `json:"unsold"`
	Sold          int64  `json:"sold"`
}

type SearchUnitsRequest struct {
	Query string `json:"query"`
	Limit int32  `json:"limit"`
}

type UnitServiceServer interface {
	RegisterProductUnits(context.Context, *RegisterProductUnitsRequest) (*UnitsResponse, error)
	GetUnregisteredQuantity(context.Context, *GetUnregisteredQuantityRequest) (*wrapperspb.Int64Value, error)
	ListUnits(context.Context, *ListUnitsRequest) (*UnitsResponse, error)
	GetUnitSummary(context.Context, *GetUnitSummaryRequest) (*UnitSummary, error)
	SearchUnits(context.Context, *SearchUnitsRequest) (*UnitsResponse, error)
}

var UnitService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: UnitServiceName,
	HandlerType: (*UnitServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(UnitServiceName, "RegisterProductUnits", UnitServiceServer.RegisterProductUnits),
		unary(UnitServiceName, "GetUnregisteredQuantity", UnitServiceServer.GetUnregisteredQuantity),
		unary(UnitServiceName, "ListUnits", UnitServiceServer.ListUnits),
		unary(UnitServiceName, "GetUnitSummary", UnitServiceServer.GetUnitSummary),
		unary(UnitServiceName, "SearchUnits", UnitServiceServer.SearchUnits),
	},
	Metadata: "omnipos/stock/v1/unit",
}

func RegisterUnitServiceServer(s grpc.ServiceRegistrar, srv UnitServiceServer) {
	s.RegisterService(&UnitService_ServiceDesc, srv)
}

type UnitServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUnitServiceClient(cc grpc.ClientConnInterface) *UnitServiceClient {
	return &UnitServiceClient{cc: cc}
}

func (c *UnitServiceClient) RegisterProductUnits(ctx context.Context, in *RegisterProductUnitsRequest, opts ...grpc.CallOption) (*UnitsResponse, error) {
	return invoke[UnitsResponse](ctx, c.cc, UnitServiceName, "RegisterProductUnits", in, opts...)
}

func (c *UnitServiceClient) GetUnregisteredQuantity(ctx context.Context, in *GetUnregisteredQuantityRequest, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	return invoke[wrapperspb.Int64Value](ctx, c.cc, UnitServiceName, "GetUnregisteredQuantity", in, opts...)
}

func (c *UnitServiceClient) ListUnits(ctx context.Context, in *ListUnitsRequest, opts ...grpc.CallOption) (*UnitsResponse, error) {
	return invoke[UnitsResponse](ctx, c.cc, UnitServiceName, "ListUnits", in, opts...)
}

func (c *UnitServiceClient) GetUnitSummary(ctx context.Context, in *GetUnitSummaryRequest, opts ...grpc.CallOption) (*UnitSummary, error) {
	return invoke[UnitSummary](ctx, c.cc, UnitServiceName, "GetUnitSummary", in, opts...)
}

func (c *UnitServiceClient) SearchUnits(ctx context.Context, in *SearchUnitsRequest, opts ...grpc.CallOption) (*UnitsResponse, error) {
	return invoke[UnitsResponse](ctx, c.cc, UnitServiceName, "SearchUnits", in, opts...)
}
