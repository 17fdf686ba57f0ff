package stockv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const WarrantyServiceName = "omnipos.stock.v1.WarrantyService"

type WarrantyTemplate struct {
	ID             string    `json:"id"`
	WarrantyNumber string    `json:"warranty_number"`
	WarrantyType   int32     `json:"warranty_type"`
	Duration       int32     `json:"duration"`
	Terms          string    `json:"terms"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateWarrantyTemplateRequest struct {
	WarrantyNumber string `json:"warranty_number"`
	WarrantyType   int32  `json:"warranty_type"`
	Duration       int32  `json:"duration"`
	Terms          string `json:"terms"`
}

type UpdateWarrantyTemplateRequest struct {
	ID             string  `json:"id"`
	WarrantyNumber *string `json:"warranty_number,omitempty"`
	Duration       *int32  `json:"duration,omitempty"`
	Terms          *string `json:"terms,omitempty"`
}

type WarrantyTemplateResponse struct {
	Warranty *WarrantyTemplate `json:"warranty"`
}

type LinkProductWarrantyRequest struct {
	ProductID  string `json:"product_id"`
	WarrantyID string `json:"warranty_id"`
}

type LookupUnitWarrantyRequest struct {
	ProductID    string `json:"product_id"`
	SerialNumber string `json:"serial_number"`
}

type WarrantyWindow struct {
	WarrantyID    string    `json:"warranty_id"`
	WarrantyType  int32     `json:"warranty_type"`
	WarrantyStart time.Time `json:"warranty_start"`
	WarrantyEnd   time.Time `json:"warranty_end"`
	Status        string    `json:"status"`
	Terms         string    `json:"terms"`
}

type LookupUnitWarrantyResponse struct {
	Unit       *ProductUnit      `json:"unit"`
	Warranties []*WarrantyWindow `json:"warranties"`
	Eligible   bool              `json:"eligible"`
	CheckedAt  time.Time         `json:"checked_at"`
}

type CreateWarrantyClaimRequest struct {
	ProductUnitID     string `json:"product_unit_id"`
	ClaimType         string `json:"claim_type"`
	Priority          string `json:"priority"`
	ResolutionDetails string `json:"resolution_details"`
	AssignedTo        string `json:"assigned_to"`
}

type WarrantyClaim struct {
	ID                string    `json:"id"`
	WarrantyID        string    `json:"warranty_id"`
	ProductUnitID     string    `json:"product_unit_id"`
	ClaimType         string    `json:"claim_type"`
	Priority          string    `json:"priority"`
	ResolutionDetails string    `json:"resolution_details"`
	AssignedTo        string    `json:"assigned_to,omitempty"`
	CreatedBy         string    `json:"created_by,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type WarrantyClaimResponse struct {
	Claim *WarrantyClaim `json:"claim"`
}

type ListClaimsRequest struct {
	ProductUnitID string `json:"product_unit_id"`
}

type ListClaimsResponse struct {
	Claims []*WarrantyClaim `json:"claims"`
}

type WarrantyServiceServer interface {
	CreateWarrantyTemplate(context.Context, *CreateWarrantyTemplateRequest) (*WarrantyTemplateResponse, error)
	UpdateWarrantyTemplate(context.Context, *UpdateWarrantyTemplateRequest) (*WarrantyTemplateResponse, error)
	LinkProductWarranty(context.Context, *LinkProductWarrantyRequest) (*emptypb.Empty, error)
	LookupUnitWarranty(context.Context, *LookupUnitWarrantyRequest) (*LookupUnitWarrantyResponse, error)
	CreateWarrantyClaim(context.Context, *CreateWarrantyClaimRequest) (*WarrantyClaimResponse, error)
	ListClaims(context.Context, *ListClaimsRequest) (*ListClaimsResponse, error)
}

var WarrantyService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: WarrantyServiceName,
	HandlerType: (*WarrantyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(WarrantyServiceName, "CreateWarrantyTemplate", WarrantyServiceServer.CreateWarrantyTemplate),
		unary(WarrantyServiceName, "UpdateWarrantyTemplate", WarrantyServiceServer.UpdateWarrantyTemplate),
		unary(WarrantyServiceName, "LinkProductWarranty", WarrantyServiceServer.LinkProductWarranty),
		unary(WarrantyServiceName, "LookupUnitWarranty", WarrantyServiceServer.LookupUnitWarranty),
		unary(WarrantyServiceName, "CreateWarrantyClaim", WarrantyServiceServer.CreateWarrantyClaim),
		unary(WarrantyServiceName, "ListClaims", WarrantyServiceServer.ListClaims),
	},
	Metadata: "omnipos/stock/v1/warranty",
}

func RegisterWarrantyServiceServer(s grpc.ServiceRegistrar, srv WarrantyServiceServer) {
	s.RegisterService(&WarrantyService_ServiceDesc, srv)
}

type WarrantyServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewWarrantyServiceClient(cc grpc.ClientConnInterface) *WarrantyServiceClient {
	return &WarrantyServiceClient{cc: cc}
}

func (c *WarrantyServiceClient) CreateWarrantyTemplate(ctx context.Context, in *CreateWarrantyTemplateRequest, opts ...grpc.CallOption) (*WarrantyTemplateResponse, error) {
	return invoke[WarrantyTemplateResponse](ctx, c.cc, WarrantyServiceName, "CreateWarrantyTemplate", in, opts...)
}

func (c *WarrantyServiceClient) UpdateWarrantyTemplate(ctx context.Context, in *UpdateWarrantyTemplateRequest, opts ...grpc.CallOption) (*WarrantyTemplateResponse, error) {
	return invoke[WarrantyTemplateResponse](ctx, c.cc, WarrantyServiceName, "UpdateWarrantyTemplate", in, opts...)
}

func (c *WarrantyServiceClient) LinkProductWarranty(ctx context.Context, in *LinkProductWarrantyRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, WarrantyServiceName, "LinkProductWarranty", in, opts...)
}

func (c *WarrantyServiceClient) LookupUnitWarranty(ctx context.Context, in *LookupUnitWarrantyRequest, opts ...grpc.CallOption) (*LookupUnitWarrantyResponse, error) {
	return invoke[LookupUnitWarrantyResponse](ctx, c.cc, WarrantyServiceName, "LookupUnitWarranty", in, opts...)
}

func (c *WarrantyServiceClient) CreateWarrantyClaim(ctx context.Context, in *CreateWarrantyClaimRequest, opts ...grpc.CallOption) (*WarrantyClaimResponse, error) {
	return invoke[WarrantyClaimResponse](ctx, c.cc, WarrantyServiceName, "CreateWarrantyClaim", in, opts...)
}

func (c *WarrantyServiceClient) ListClaims(ctx context.Context, in *ListClaimsRequest, opts ...grpc.CallOption) (*ListClaimsResponse, error) {
	return invoke[ListClaimsResponse](ctx, c.cc, WarrantyServiceName, "ListClaims", in, opts...)
}
