package vendure

// GraphQL documents for the shop API. Mutations that return the
// Order | ErrorResult union select errorCode and message so typed
// rejections can be told apart from transport failures.

const orderFields = `
fragment OrderFields on Order {
  id
  code
  state
  currencyCode
  totalWithTax
  totalQuantity
  lines {
    id
    quantity
    linePriceWithTax
    productVariant {
      id
      sku
      name
      priceWithTax
      currencyCode
      featuredAsset {
        preview
      }
    }
  }
}
`

const activeOrderQuery = orderFields + `
query ActiveOrder {
  activeOrder {
    ...OrderFields
  }
}
`

const addItemToOrderMutation = orderFields + `
mutation AddItemToOrder($productVariantId: ID!, $quantity: Int!) {
  addItemToOrder(productVariantId: $productVariantId, quantity: $quantity) {
    ...OrderFields
    ... on ErrorResult {
      errorCode
      message
    }
  }
}
`

const removeOrderLineMutation = orderFields + `
mutation RemoveOrderLine($orderLineId: ID!) {
  removeOrderLine(orderLineId: $orderLineId) {
    ...OrderFields
    ... on ErrorResult {
      errorCode
      message
    }
  }
}
`

const adjustOrderLineMutation = orderFields + `
mutation AdjustOrderLine($orderLineId: ID!, $quantity: Int!) {
  adjustOrderLine(orderLineId: $orderLineId, quantity: $quantity) {
    ...OrderFields
    ... on ErrorResult {
      errorCode
      message
    }
  }
}
`

const setCustomerForOrderMutation = `
mutation SetCustomerForOrder($input: CreateCustomerInput!) {
  setCustomerForOrder(input: $input) {
    ... on Order {
      id
    }
    ... on ErrorResult {
      errorCode
      message
    }
  }
}
`

const setOrderShippingAddressMutation = `
mutation SetOrderShippingAddress($input: CreateAddressInput!) {
  setOrderShippingAddress(input: $input) {
    ... on Order {
      id
    }
    ... on ErrorResult {
      errorCode
      message
    }
  }
}
`

const eligibleShippingMethodsQuery = `
query EligibleShippingMethods {
  eligibleShippingMethods {
    id
    code
    name
    description
    price
    priceWithTax
  }
}
`

const setOrderShippingMethodMutation = `
mutation SetOrderShippingMethod($shippingMethodId: [ID!]!) {
  setOrderShippingMethod(shippingMethodId: $shippingMethodId) {
    ... on Order {
      id
    }
    ... on ErrorResult {
      errorCode
      message
    }
  }
}
`

const eligiblePaymentMethodsQuery = `
query EligiblePaymentMethods {
  eligiblePaymentMethods {
    id
    code
    name
    isEligible
  }
}
`

const addPaymentToOrderMutation = `
mutation AddPaymentToOrder($input: PaymentInput!) {
  addPaymentToOrder(input: $input) {
    ... on Order {
      id
      state
    }
    ... on ErrorResult {
      errorCode
      message
    }
  }
}
`

const transitionOrderToStateMutation = `
mutation TransitionOrderToState($state: String!) {
  transitionOrderToState(state: $state) {
    ... on Order {
      id
      state
    }
    ... on OrderStateTransitionError {
      errorCode
      message
      transitionError
    }
  }
}
`

const productsQuery = `
query Products($options: ProductListOptions) {
  products(options: $options) {
    items {
      id
      name
      slug
      description
      featuredAsset {
        preview
      }
      variants {
        id
        sku
        name
        priceWithTax
        currencyCode
      }
    }
    totalItems
  }
}
`

const productBySlugQuery = `
query ProductBySlug($slug: String!) {
  product(slug: $slug) {
    id
    name
    slug
    description
    featuredAsset {
      preview
    }
    variants {
      id
      sku
      name
      priceWithTax
      currencyCode
      featuredAsset {
        preview
      }
    }
  }
}
`

const collectionsQuery = `
query Collections {
  collections {
    items {
      id
      name
      slug
      featuredAsset {
        preview
      }
    }
  }
}
`

const collectionBySlugQuery = `
query CollectionBySlug($slug: String!) {
  collection(slug: $slug) {
    id
    name
    slug
    featuredAsset {
      preview
    }
    productVariants {
      items {
        id
        sku
        name
        priceWithTax
        currencyCode
        featuredAsset {
          preview
        }
        product {
          slug
        }
      }
    }
  }
}
`
