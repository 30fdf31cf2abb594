package services

import (
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// buildRelations is the second pass over all supplied rows. It runs after
// every entity write so that referenced codes are already known-valid, and
// inserts both directions of each edge so either endpoint can query its
// relations directly. Unresolvable references are skipped silently.
func (s *ImportService) buildRelations(tx repository.CatalogRepository, rows []*importRow) error {
	for _, row := range rows {
		if len(row.Related) == 0 {
			continue
		}

		var fromType models.EntityType
		var fromCode string
		switch {
		case row.ISKU != "":
			fromType, fromCode = models.EntityTypeProductItem, row.ISKU
		case row.ProductCode != "":
			fromType, fromCode = models.EntityTypeProduct, row.ProductCode
		default:
			continue
		}

		for _, ref := range row.Related {
			toType, toCode, ok, err := s.resolveRelationTarget(tx, ref)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := s.insertEdgePair(tx, fromType, fromCode, toType, toCode); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveRelationTarget types a referenced code, checking product codes
// before ISKUs.
func (s *ImportService) resolveRelationTarget(tx repository.CatalogRepository, ref string) (models.EntityType, string, bool, error) {
	isProduct, err := tx.ProductCodeExists(ref)
	if err != nil {
		return "", "", false, err
	}
	if isProduct {
		return models.EntityTypeProduct, ref, true, nil
	}

	isItem, err := tx.ISKUExists(ref)
	if err != nil {
		return "", "", false, err
	}
	if isItem {
		return models.EntityTypeProductItem, ref, true, nil
	}

	return "", "", false, nil
}

func (s *ImportService) insertEdgePair(tx repository.CatalogRepository, fromType models.EntityType, fromCode string, toType models.EntityType, toCode string) error {
	if err := tx.InsertRelatedEdgeIgnore(&models.RelatedEntity{
		FromType:     fromType,
		FromCode:     fromCode,
		ToType:       toType,
		ToCode:       toCode,
		RelationType: models.RelationTypeRelated,
	}); err != nil {
		return err
	}
	return tx.InsertRelatedEdgeIgnore(&models.RelatedEntity{
		FromType:     toType,
		FromCode:     toCode,
		ToType:       fromType,
		ToCode:       fromCode,
		RelationType: models.RelationTypeRelated,
	})
}
