package stockv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const CatalogServiceName = "omnipos.stock.v1.CatalogService"

type Product struct {
	ID            string    `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	StockQuantity int64     `json:"stock_quantity"`
	Cost          string    `json:"cost"`
	Price         string    `json:"price"`
	SerialTracked bool      `json:"serial_tracked"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Cost          string `json:"cost"`
	Price         string `json:"price"`
	SerialTracked bool   `json:"serial_tracked"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type UpdateProductRequest struct {
	ID            string `json:"id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	Cost          string `json:"cost"`
	Price         string `json:"price"`
	SerialTracked bool   `json:"serial_tracked"`
	IsActive      bool   `json:"is_active"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type ListProductsRequest struct {
	IsActive      *bool  `json:"is_active,omitempty"`
	SerialTracked *bool  `json:"serial_tracked,omitempty"`
	Query         string `json:"query"`
	SortBy        string `json:"sort_by"`
	SortOrder     string `json:"sort_order"`
	Page          int32  `json:"page"`
	PageSize      int32  `json:"page_size"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
	Total    int32      `json:"total"`
	Page     int32      `json:"page"`
	PageSize int32      `json:"page_size"`
}

type CatalogServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error)
}

var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CatalogServiceName, "CreateProduct", CatalogServiceServer.CreateProduct),
		unary(CatalogServiceName, "GetProduct", CatalogServiceServer.GetProduct),
		unary(CatalogServiceName, "ListProducts", CatalogServiceServer.ListProducts),
		unary(CatalogServiceName, "UpdateProduct", CatalogServiceServer.UpdateProduct),
	},
	Metadata: "omnipos/stock/v1/catalog",
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, CatalogServiceName, "CreateProduct", in, opts...)
}

func (c *CatalogServiceClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, CatalogServiceName, "GetProduct", in, opts...)
}

func (c *CatalogServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.cc, CatalogServiceName, "ListProducts", in, opts...)
}

func (c *CatalogServiceClient) UpdateProduct(ctx context.Context, in *UpdateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, CatalogServiceName, "UpdateProduct", in, opts...)
}
