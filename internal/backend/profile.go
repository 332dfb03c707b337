package backend

import (
	"context"
	"net/http"
	"strconv"
)

const (
	OpCustomerAddress     = "customer-address"
	OpJobInfo             = "job-info"
	OpWifeInfo            = "wife-info"
	OpFinanceInfo         = "finance-info"
	OpSaveCustomerAddress = "save-customer-address"
	OpSaveJobInfo         = "save-job-info"
	OpSaveWifeInfo        = "save-wife-info"
	OpSaveFinanceInfo     = "save-finance-info"
)

func customerPath(resource string, id int64) string {
	return "api/customer/" + resource + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) CustomerAddress(ctx context.Context, customerID int64) (*Address, error) {
	return direct[Address](ctx, c, call{
		op:     OpCustomerAddress,
		method: http.MethodGet,
		base:   c.config.CustomersAPI,
		path:   customerPath("address", customerID),
		key:    c.config.Keys.CustomerAddressKey,
	}, messages{
		failed:     "Adres bilgileri alınırken bir hata oluştu.",
		unexpected: "Adres bilgileri alınırken beklenmeyen bir hata oluştu.",
	})
}

func (c *Client) JobInfo(ctx context.Context, customerID int64) (*Job, error) {
	return direct[Job](ctx, c, call{
		op:     OpJobInfo,
		method: http.MethodGet,
		base:   c.config.CustomersAPI,
		path:   customerPath("job-info", customerID),
		key:    c.config.Keys.JobInformationKey,
	}, messages{
		failed:     "Meslek bilgileri alınırken bir hata oluştu.",
		unexpected: "Meslek bilgileri alınırken beklenmeyen bir hata oluştu.",
	})
}

func (c *Client) WifeInfo(ctx context.Context, customerID int64) (*WifeInfo, error) {
	return direct[WifeInfo](ctx, c, call{
		op:     OpWifeInfo,
		method: http.MethodGet,
		base:   c.config.CustomersAPI,
		path:   customerPath("wife-info", customerID),
		key:    c.config.Keys.WifeInformationKey,
	}, messages{
		failed:     "Eş bilgileri alınırken bir hata oluştu.",
		unexpected: "Eş bilgileri alınırken beklenmeyen bir hata oluştu.",
	})
}

func (c *Client) FinanceInfo(ctx context.Context, customerID int64) (*Finance, error) {
	return direct[Finance](ctx, c, call{
		op:     OpFinanceInfo,
		method: http.MethodGet,
		base:   c.config.CustomersAPI,
		path:   customerPath("finance-assets", customerID),
		key:    c.config.Keys.CustomerFinanceKey,
	}, messages{
		failed:     "Varlık bilgileri alınırken bir hata oluştu.",
		unexpected: "Varlık bilgileri alınırken beklenmeyen bir hata oluştu.",
	})
}

func (c *Client) SaveCustomerAddress(ctx context.Context, req SaveAddressRequest) error {
	return save(ctx, c, call{
		op:     OpSaveCustomerAddress,
		method: http.MethodPost,
		base:   c.config.CustomersAPI,
		path:   "api/customer/address",
		key:    c.config.Keys.SaveCustomerAddressKey,
		body:   req,
	}, messages{
		failed:     "Adres bilgileri kaydedilemedi.",
		unexpected: "Adres bilgileri kaydedilirken beklenmeyen bir hata oluştu.",
	})
}

func (c *Client) SaveJobInfo(ctx context.Context, req SaveJobRequest) error {
	return save(ctx, c, call{
		op:     OpSaveJobInfo,
		method: http.MethodPost,
		base:   c.config.CustomersAPI,
		path:   "api/customer/job-info",
		key:    c.config.Keys.SaveJobInformationKey,
		body:   req,
	}, messages{
		failed:     "Meslek bilgileri kaydedilemedi.",
		unexpected: "Meslek bilgileri kaydedilirken beklenmeyen bir hata oluştu.",
	})
}

// SaveWifeInfo differs from the other saves: the customer id travels in the
// path as well as in the body.
func (c *Client) SaveWifeInfo(ctx context.Context, customerID int64, req SaveWifeInfoRequest) error {
	req.CustomerID = customerID
	return save(ctx, c, call{
		op:     OpSaveWifeInfo,
		method: http.MethodPost,
		base:   c.config.CustomersAPI,
		path:   customerPath("wife-info", customerID),
		key:    c.config.Keys.SaveWifeInformationKey,
		body:   req,
	}, messages{
		failed:     "Eş bilgileri kaydedilemedi.",
		unexpected: "Eş bilgileri kaydedilirken beklenmeyen bir hata oluştu.",
	})
}

func (c *Client) SaveFinanceInfo(ctx context.Context, req SaveFinanceRequest) error {
	return save(ctx, c, call{
		op:     OpSaveFinanceInfo,
		method: http.MethodPost,
		base:   c.config.CustomersAPI,
		path:   "api/customer/finance-assets",
		key:    c.config.Keys.SaveCustomerFinanceKey,
		body:   req,
	}, messages{
		failed:     "Varlık bilgileri kaydedilemedi.",
		unexpected: "Varlık bilgileri kaydedilirken beklenmeyen bir hata oluştu.",
	})
}
