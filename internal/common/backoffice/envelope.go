package backoffice

import (
	"encoding/json"
	"fmt"
)

// Invocation is the HTTP-style envelope the backoffice functions expect.
type Invocation struct {
	HTTPMethod            string            `json:"httpMethod"`
	Resource              string            `json:"resource"`
	PathParameters        map[string]string `json:"pathParameters,omitempty"`
	QueryStringParameters map[string]string `json:"queryStringParameters,omitempty"`
}

// InvocationResult carries the function's own status code, the gateway
// answers 200 even when the function did not.
type InvocationResult struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func (r InvocationResult) OK() bool {
	return r.StatusCode == 200 && r.Body != "" && r.Body != "null"
}

func (r InvocationResult) Decode(v any) error {
	if err := json.Unmarshal([]byte(r.Body), v); err != nil {
		return fmt.Errorf("invalid function body: %w", err)
	}
	return nil
}

// Function names without the environment suffix.
const (
	FunctionBanks     = "BanksLambda"
	FunctionAccounts  = "AccountsLambda"
	FunctionSecurity  = "SecurityLambda"
	FunctionCustomers = "CustomersLambda"
)

const (
	resourceBanks     = "/banks"
	resourceAccount   = "/customers/{customerId}/accounts/{accountId}"
	resourceClient    = "/clients/{clientId}"
	resourceCustomer  = "/customers/{customerId}"
	resourceEmployees = "/customers/{customerId}/employees/{employeeId}"
)
