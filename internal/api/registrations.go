package api

// --- Registration Methods ---

func (c *Client) ListRegistrations(seasonID string, params QueryParams) ([]Registration, error) {
	data, err := c.get(buildQuery("/season-registrations/season/"+escape(seasonID), params))
	if err != nil {
		return nil, err
	}
	return decodeList[Registration](data)
}

func (c *Client) GetRegistration(id string) (*Registration, error) {
	data, err := c.get("/season-registrations/" + escape(id))
	if err != nil {
		return nil, err
	}
	return decodeOne[Registration](data)
}

// UpdateRegistrationStatus is the only write the console performs on
// registrations. Creation happens through the pilot-facing checkout.
func (c *Client) UpdateRegistrationStatus(id string, input RegistrationStatusInput) (*Registration, error) {
	data, err := c.patch("/season-registrations/"+escape(id)+"/status", input)
	if err != nil {
		return nil, err
	}
	return decodeOne[Registration](data)
}
