package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tolyara/webshop/internal/domain"
)

type productPayload struct {
	ID               int64     `json:"product_id,omitempty"`
	Name             string    `json:"product_name"`
	CategoryID       int64     `json:"category_id"`
	ManufacturerName string    `json:"manufacturer_name"`
	Price            float64   `json:"price"`
	CreationDate     time.Time `json:"creation_date"`
	Colour           *string   `json:"colour,omitempty"`
	Size             string    `json:"size"`
	Amount           int32     `json:"amount"`
}

func productToPayload(p domain.Product) productPayload {
	return productPayload{
		ID:               p.ID,
		Name:             p.Name,
		CategoryID:       p.CategoryID,
		ManufacturerName: p.ManufacturerName,
		Price:            p.Price,
		CreationDate:     p.CreationDate,
		Colour:           p.Colour,
		Size:             p.Size,
		Amount:           p.Amount,
	}
}

func (p productPayload) toDomain() domain.Product {
	creationDate := p.CreationDate
	if creationDate.IsZero() {
		creationDate = time.Now()
	}
	return domain.Product{
		ID:               p.ID,
		Name:             p.Name,
		CategoryID:       p.CategoryID,
		ManufacturerName: p.ManufacturerName,
		Price:            p.Price,
		CreationDate:     creationDate,
		Colour:           p.Colour,
		Size:             p.Size,
		Amount:           p.Amount,
	}
}

func productsToPayload(products map[int64]domain.Product) map[int64]productPayload {
	payload := make(map[int64]productPayload, len(products))
	for id, p := range products {
		payload[id] = productToPayload(p)
	}
	return payload
}

func parseIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (s *Server) listProducts(w http.ResponseWriter, _ *http.Request) {
	products, err := s.storage.Products()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productsToPayload(products))
}

func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	product := payload.toDomain()
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errs[0].Error()})
		return
	}

	id, err := s.storage.AddProduct(product)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"product_id": id})
}

func (s *Server) productByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	product, err := s.storage.ProductByID(id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productToPayload(product))
}

func (s *Server) editProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	product := payload.toDomain()
	product.ID = id
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": errs[0].Error()})
		return
	}

	if err := s.storage.EditProduct(product); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"product_id": id})
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid product id"})
		return
	}

	if err := s.storage.DeleteProduct(id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) productByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	product, err := s.storage.ProductByName(name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productToPayload(product))
}

func (s *Server) findProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ProductFilter{
		ManufacturerName: query.Get("manufacturer"),
		MinPrice:         query.Get("minPrice"),
		MaxPrice:         query.Get("maxPrice"),
		Colour:           query.Get("colour"),
	}

	products, err := s.storage.FindProducts(filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productsToPayload(products))
}

func (s *Server) listManufacturers(w http.ResponseWriter, _ *http.Request) {
	manufacturers, err := s.storage.Manufacturers()
	if err != nil {
		s.writeError(w, err)
		return
	}

	names := make([]string, 0, len(manufacturers))
	for name := range manufacturers {
		names = append(names, name)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"manufacturers": names})
}
