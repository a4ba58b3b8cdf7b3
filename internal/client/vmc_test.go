package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kubev2v/sddcinfo/internal/client"
	"github.com/kubev2v/sddcinfo/pkg/requestid"
	"github.com/kubev2v/sddcinfo/pkg/vmc"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	orgID        = "2f6a2b80-6c4e-4d3b-9a77-7d1c2e3f4a5b"
	refreshToken = "refresh-me"
)

func accessToken(org string) string {
	claims := struct {
		ContextName string `json:"context_name"`
		jwt.RegisteredClaims
	}{
		ContextName: org,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
			Subject:   "reporter",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	Expect(err).To(BeNil())
	return token
}

var _ = Describe("vmc client", func() {
	var (
		ctx    context.Context
		mux    *http.ServeMux
		server *httptest.Server
		c      *client.VMCClient
		token  string
	)

	BeforeEach(func() {
		ctx = requestid.ToContext(context.Background(), "run-1")
		token = accessToken(orgID)
		mux = http.NewServeMux()
		server = httptest.NewServer(mux)
		c = client.NewVMCClient(orgID, client.Service{CSP: server.URL, VMC: server.URL + "/"}, 5*time.Second)

		mux.HandleFunc("/csp/gateway/am/api/auth/api-tokens/authorize", func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal(http.MethodPost))
			Expect(r.ParseForm()).To(Succeed())
			if r.PostForm.Get("refresh_token") != refreshToken {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"access_token": token, "expires_in": 1799})
		})
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("Authenticate", func() {
		It("exchanges the refresh token", func() {
			t, err := c.Authenticate(ctx, refreshToken)

			Expect(err).To(BeNil())
			Expect(t.Value).To(Equal(token))
			Expect(t.ExpiresIn).To(Equal(1799 * time.Second))
		})

		It("returns an auth error when the refresh token is rejected", func() {
			_, err := c.Authenticate(ctx, "wrong")

			var authErr *client.ErrAuth
			Expect(errors.As(err, &authErr)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("status 400"))
		})

		It("returns an auth error when no access token is returned", func() {
			token = ""
			_, err := c.Authenticate(ctx, refreshToken)

			var authErr *client.ErrAuth
			Expect(errors.As(err, &authErr)).To(BeTrue())
		})

		It("accepts an opaque access token", func() {
			token = "not-a-jwt"
			t, err := c.Authenticate(ctx, refreshToken)

			Expect(err).To(BeNil())
			Expect(t.Value).To(Equal("not-a-jwt"))
		})
	})

	Describe("org and sddc reads", func() {
		BeforeEach(func() {
			_, err := c.Authenticate(ctx, refreshToken)
			Expect(err).To(BeNil())
		})

		It("sends the access token and the request id", func() {
			mux.HandleFunc("/vmc/api/orgs/"+orgID, func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("csp-auth-token")).To(Equal(token))
				Expect(r.Header.Get(requestid.Header)).To(Equal("run-1"))
				_, _ = w.Write([]byte(`{"id":"` + orgID + `","org_type":"CUSTOMER"}`))
			})

			org, err := c.Org(ctx)

			Expect(err).To(BeNil())
			Expect(org.OrgType).To(Equal("CUSTOMER"))
		})

		It("fails when the org type is missing", func() {
			mux.HandleFunc("/vmc/api/orgs/"+orgID, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":"` + orgID + `"}`))
			})

			_, err := c.Org(ctx)

			var malformed *client.ErrMalformedResponse
			Expect(errors.As(err, &malformed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("org_type"))
		})

		It("lists every sddc of the org", func() {
			mux.HandleFunc("/vmc/api/orgs/"+orgID+"/sddcs", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[{"id":"a","name":"one","sddc_state":"READY","resource_config":{"sddc_id":"a","region":"US_WEST_2"}},{"id":"b","sddc_state":"FAILED"}]`))
			})

			sddcs, err := c.SDDCs(ctx, "")

			Expect(err).To(BeNil())
			Expect(sddcs).To(HaveLen(2))
			Expect(sddcs[0].ResourceConfig.Region).To(Equal("US_WEST_2"))
			Expect(sddcs[1].State).To(Equal(vmc.SDDCStateFailed))
			Expect(sddcs[1].ResourceConfig).To(BeNil())
		})

		It("returns a single element list for one sddc", func() {
			mux.HandleFunc("/vmc/api/orgs/"+orgID+"/sddcs/a", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":"a","name":"one","sddc_state":"READY","resource_config":{"sddc_id":"a"}}`))
			})

			sddcs, err := c.SDDCs(ctx, "a")

			Expect(err).To(BeNil())
			Expect(sddcs).To(HaveLen(1))
			Expect(sddcs[0].Name).To(Equal("one"))
		})

		It("fails on a non 2xx sddc list", func() {
			mux.HandleFunc("/vmc/api/orgs/"+orgID+"/sddcs", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			})

			_, err := c.SDDCs(ctx, "")

			var malformed *client.ErrMalformedResponse
			Expect(errors.As(err, &malformed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("status 500"))
		})

		It("fails on an undecodable sddc list", func() {
			mux.HandleFunc("/vmc/api/orgs/"+orgID+"/sddcs", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error_code":"oops"}`))
			})

			_, err := c.SDDCs(ctx, "")

			var malformed *client.ErrMalformedResponse
			Expect(errors.As(err, &malformed)).To(BeTrue())
		})
	})

	Describe("sub-resources", func() {
		var sddc vmc.SDDC

		BeforeEach(func() {
			_, err := c.Authenticate(ctx, refreshToken)
			Expect(err).To(BeNil())
			sddc = vmc.SDDC{ID: "a", ResourceConfig: &vmc.ResourceConfig{NSXAPIPublicEndpointURL: server.URL + "/nsx/"}}
		})

		It("reads public ips, segments, routes and linked vpcs", func() {
			mux.HandleFunc("/nsx/cloud-service/api/v1/public-ips/", func(w http.ResponseWriter, r *http.Request) {
				Expect(r.Header.Get("csp-auth-token")).To(Equal(token))
				_, _ = w.Write([]byte(`{"result_count":4}`))
			})
			mux.HandleFunc("/nsx/policy/api/v1/infra/tier-1s/cgw/segments", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"results":[{"id":"web","type":"ROUTED","subnets":[{"network":"10.0.0.0/24"}]}]}`))
			})
			mux.HandleFunc("/nsx/cloud-service/api/v1/infra/external/routes/advertised", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"routes":[{"destination":"10.0.0.0/24","connectivities":[{"status":"SUCCEEDED","connectivity_type":"DX"}]}]}`))
			})
			mux.HandleFunc("/nsx/cloud-service/api/v1/infra/external/routes/learned", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"routes":[]}`))
			})
			mux.HandleFunc("/nsx/cloud-service/api/v1/linked-vpcs", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"results":[{"linked_vpc_id":"vpc-1"}]}`))
			})

			ips, err := c.PublicIPs(ctx, sddc)
			Expect(err).To(BeNil())
			Expect(*ips.ResultCount).To(Equal(4))

			segments, err := c.Segments(ctx, sddc)
			Expect(err).To(BeNil())
			Expect(segments.Results).To(HaveLen(1))
			Expect(segments.Results[0].Subnets[0].Network).To(Equal("10.0.0.0/24"))

			advertised, err := c.AdvertisedRoutes(ctx, sddc)
			Expect(err).To(BeNil())
			Expect(advertised.Routes[0].Connectivities[0].ConnectivityType).To(Equal("DX"))

			learned, err := c.LearnedRoutes(ctx, sddc)
			Expect(err).To(BeNil())
			Expect(learned.Routes).To(BeEmpty())

			vpcs, err := c.LinkedVPCs(ctx, sddc)
			Expect(err).To(BeNil())
			Expect(vpcs.Results[0].LinkedVPCID).To(Equal("vpc-1"))
		})

		It("treats a forbidden sub-resource as absent", func() {
			mux.HandleFunc("/nsx/policy/api/v1/infra/tier-1s/cgw/segments", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			})

			segments, err := c.Segments(ctx, sddc)

			Expect(err).To(BeNil())
			Expect(segments).To(BeNil())
		})

		It("treats a missing sub-resource as absent", func() {
			ips, err := c.PublicIPs(ctx, sddc)

			Expect(err).To(BeNil())
			Expect(ips).To(BeNil())
		})

		It("treats an undecodable sub-resource as absent", func() {
			mux.HandleFunc("/nsx/cloud-service/api/v1/public-ips/", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			})

			ips, err := c.PublicIPs(ctx, sddc)

			Expect(err).To(BeNil())
			Expect(ips).To(BeNil())
		})

		It("does not call anything for an sddc without nsx endpoint", func() {
			ips, err := c.PublicIPs(ctx, vmc.SDDC{ID: "failed"})

			Expect(err).To(BeNil())
			Expect(ips).To(BeNil())
		})
	})
})
