package shopsdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ErrorResponse is the body of every error the API returns.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// System
// ============================================================================

type WelcomeResponse struct {
	Message string `json:"message"`
}

// VersionResponse is returned by GET /api/v1/ and GET /api/v2/.
type VersionResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database       string `json:"database"`
	ChallengeStore string `json:"challenge_store"`
}

// ============================================================================
// Authentication
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the profile of the logged in account merged with the
// issued tokens.
type SessionResponse struct {
	UserID          string     `json:"user_id"`
	Username        string     `json:"username"`
	Discriminator   int        `json:"discriminator"`
	Handle          string     `json:"handle"`
	LanguageISO     string     `json:"language_iso,omitempty"`
	IsEmailVerified bool       `json:"is_email_verified"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	SessionToken    string     `json:"session_token"`
	RefreshToken    string     `json:"refresh_token"`
}

// SecondFactorRequired is returned by login instead of a session when the
// account has a second factor. Token is valid for a few minutes and one use.
type SecondFactorRequired struct {
	Required        bool     `json:"2fa_required"`
	Token           string   `json:"token"`
	Methods         []string `json:"methods"`
	PreferredMethod string   `json:"preferred_method"`
}

// OTPCode is a six digit one-time code. It accepts a JSON string or number;
// numbers are zero padded so 12345 becomes "012345".
type OTPCode string

func (c *OTPCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = OTPCode(s)
		return nil
	}

	n, err := strconv.ParseUint(string(data), 10, 32)
	if err != nil {
		return fmt.Errorf("otp code must be a string or a non-negative integer")
	}
	*c = OTPCode(fmt.Sprintf("%06d", n))
	return nil
}

type SecondFactorSubmitRequest struct {
	Token   string  `json:"token"`
	OTPCode OTPCode `json:"otp_code"`
}

type RegisterRequest struct {
	Token      string `json:"token"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	LanguageID *int   `json:"language_id,omitempty"`
}

type RegisterResponse struct {
	Message       string `json:"message"`
	Username      string `json:"username"`
	Discriminator int    `json:"discriminator"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

type TOTPEnrollResponse struct {
	Secret  string `json:"secret"`
	URL     string `json:"otpauth_url"`
	Issuer  string `json:"issuer"`
	Account string `json:"account"`
}

type TOTPEnableRequest struct {
	Code OTPCode `json:"otp_code"`
}

// ============================================================================
// Email
// ============================================================================

type ConfirmationRequest struct {
	Email string `json:"email"`
}

type ConfirmationResponse struct {
	Detail string `json:"detail"`
	// ConfirmationToken is only present when the server exposes tokens,
	// for deployments without mail delivery.
	ConfirmationToken string `json:"confirmation_token,omitempty"`
}

// ============================================================================
// Products
// ============================================================================

type Category struct {
	ID          int     `json:"category_id"`
	Name        string  `json:"category_name"`
	Color       string  `json:"category_color"`
	Description *string `json:"category_description"`
}

type Product struct {
	ID                   int       `json:"product_id"`
	Name                 string    `json:"product_name"`
	Description          string    `json:"product_description"`
	Type                 string    `json:"product_type"`
	Price                *float64  `json:"price"`
	BasePrice            *float64  `json:"base_price"`
	ImageURL             *string   `json:"image_url"`
	PreparationTimeHours int       `json:"preparation_time_hours"`
	MinOrderHours        int       `json:"min_order_hours"`
	ServingInfo          *string   `json:"serving_info"`
	IsCustomizable       bool      `json:"is_customizable"`
	CreatedAt            time.Time `json:"created_at"`
	Category             Category  `json:"category"`
	HasVariants          bool      `json:"has_variants"`
	DefaultVariantID     *int      `json:"default_variant_id"`
	VariantCount         int       `json:"variant_count"`
	AttributeCount       int       `json:"attribute_count"`
	TagCount             int       `json:"tag_count"`
	ImageCount           int       `json:"image_count"`
}

type PaginationInfo struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

type ProductListResponse struct {
	Products   []Product      `json:"products"`
	Pagination PaginationInfo `json:"pagination"`
}

// ListProductsParams are the catalog query parameters. Zero values are
// omitted and take the server defaults.
type ListProductsParams struct {
	Page       int
	Size       int
	Language   string
	CategoryID int
	TagIDs     []int
	SortBy     string
	SortOrder  string
}

type ProductAttribute struct {
	Name  string  `json:"name"`
	Value string  `json:"value"`
	Color *string `json:"color,omitempty"`
}

type ProductTranslation struct {
	LanguageISO string  `json:"language_iso"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type CreateProductRequest struct {
	Name                 string               `json:"product_name"`
	Description          string               `json:"product_description"`
	Type                 string               `json:"product_type"`
	CategoryID           int                  `json:"category_id"`
	Price                *float64             `json:"price,omitempty"`
	BasePrice            *float64             `json:"base_price,omitempty"`
	ImageURL             *string              `json:"image_url,omitempty"`
	PreparationTimeHours *int                 `json:"preparation_time_hours,omitempty"`
	MinOrderHours        *int                 `json:"min_order_hours,omitempty"`
	ServingInfo          *string              `json:"serving_info,omitempty"`
	IsCustomizable       bool                 `json:"is_customizable"`
	TagIDs               []int                `json:"tag_ids,omitempty"`
	Attributes           []ProductAttribute   `json:"attributes,omitempty"`
	Translations         []ProductTranslation `json:"translations,omitempty"`
}

type CreateProductResponse struct {
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}
